package code

// 通用状态码
var (
	Success = NewSuss(1, lang{en: "Success", zh_cn: "成功"})

	ErrorServerInternal       = NewError(10000001, lang{en: "Internal server error", zh_cn: "服务内部错误"})
	ErrorInvalidParams        = NewError(10000002, lang{en: "Invalid request parameters", zh_cn: "请求参数错误"})
	ErrorTooManyRequests      = NewError(10000003, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorNotUserAuthToken     = NewError(10000004, lang{en: "Missing auth token", zh_cn: "缺少用户认证令牌"})
	ErrorInvalidUserAuthToken = NewError(10000005, lang{en: "Invalid auth token", zh_cn: "用户认证令牌无效"})
	ErrorNotFoundAPI          = NewError(10000006, lang{en: "API not found", zh_cn: "接口不存在"})
	ErrorDBQuery              = NewError(10000010, lang{en: "Database query failed", zh_cn: "数据库查询失败"})
	ErrorDBIntegrity          = NewError(10000011, lang{en: "Data integrity violation", zh_cn: "数据完整性冲突"})
)

// 用户相关状态码
var (
	ErrorUserEmailExists       = NewError(20000001, lang{en: "Email already registered", zh_cn: "邮箱已被注册"})
	ErrorUserDocumentExists    = NewError(20000002, lang{en: "Document already registered", zh_cn: "证件号已被注册"})
	ErrorUserNotFound          = NewError(20000003, lang{en: "User does not exist", zh_cn: "用户不存在"})
	ErrorUserPasswordIncorrect = NewError(20000004, lang{en: "Incorrect email or password", zh_cn: "邮箱或密码错误"})
	ErrorUserRegisterDisabled  = NewError(20000005, lang{en: "Registration is disabled", zh_cn: "注册功能已关闭"})
	ErrorUserCreateFailed      = NewError(20000006, lang{en: "Failed to create user", zh_cn: "创建用户失败"})
)

// 分类相关状态码
var (
	ErrorCategoryNotFound = NewError(30000001, lang{en: "Category does not exist", zh_cn: "分类不存在"})
	ErrorCategoryExists   = NewError(30000002, lang{en: "Category already exists", zh_cn: "分类已存在"})
	ErrorCategoryInUse    = NewError(30000003, lang{en: "Category is referenced by notes", zh_cn: "分类下仍有笔记引用"})
)

// 笔记相关状态码
var (
	ErrorNoteNotFound        = NewError(40000001, lang{en: "Note does not exist", zh_cn: "笔记不存在"})
	ErrorNoteVersionConflict = NewError(40000002, lang{en: "Note version conflict, please refresh and retry", zh_cn: "笔记版本冲突，请刷新后重试"})
	ErrorNoteCreateFailed    = NewError(40000003, lang{en: "Failed to create note", zh_cn: "创建笔记失败"})
)

// 笔记历史相关状态码
var (
	ErrorHistoryNotFound    = NewError(50000001, lang{en: "Note history does not exist", zh_cn: "笔记历史不存在"})
	ErrorHistoryNoteMissing = NewError(50000002, lang{en: "Note associated with history does not exist", zh_cn: "历史记录关联的笔记不存在"})
)
