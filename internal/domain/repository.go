// Package domain 定义领域模型和接口
package domain

import (
	"context"
	"errors"
)

// ErrVersionConflict 乐观并发控制冲突
// 修改携带的期望版本号与存储中的当前版本号不一致时返回
var ErrVersionConflict = errors.New("note version conflict")

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByDocument 根据证件号获取用户
	GetByDocument(ctx context.Context, document string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)
}

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	// GetByID 根据ID获取分类
	GetByID(ctx context.Context, id, uid int64) (*Category, error)

	// GetByName 根据名称获取分类
	GetByName(ctx context.Context, name string, uid int64) (*Category, error)

	// Create 创建分类
	Create(ctx context.Context, category *Category) (*Category, error)

	// Update 更新分类
	Update(ctx context.Context, category *Category, uid int64) error

	// List 获取分类列表
	List(ctx context.Context, uid int64) ([]*Category, error)

	// Delete 删除分类
	Delete(ctx context.Context, id, uid int64) error
}

// NoteRepository 笔记仓储接口
type NoteRepository interface {
	// GetByID 根据ID获取笔记
	GetByID(ctx context.Context, id, uid int64) (*Note, error)

	// Create 创建笔记，版本号从 1 开始
	Create(ctx context.Context, note *Note) (*Note, error)

	// UpdateWithVersion 带版本条件的更新
	// 在同一事务中写入修改前快照并以 WHERE version = expected 的条件更新笔记，
	// 版本不匹配时返回 ErrVersionConflict，不产生任何持久化效果
	UpdateWithVersion(ctx context.Context, note *Note, mutation *NoteMutation, uid int64) (*Note, error)

	// CountByCategoryID 统计引用指定分类的笔记数量
	CountByCategoryID(ctx context.Context, categoryID, uid int64) (int64, error)

	// List 分页获取笔记列表
	List(ctx context.Context, uid, categoryID int64, page, pageSize int) ([]*Note, error)

	// ListCount 获取笔记数量
	ListCount(ctx context.Context, uid, categoryID int64) (int64, error)

	// Delete 删除笔记及其全部历史
	Delete(ctx context.Context, id, uid int64) error
}

// NoteHistoryRepository 笔记历史仓储接口
type NoteHistoryRepository interface {
	// GetByID 根据ID获取历史记录
	GetByID(ctx context.Context, id, uid int64) (*NoteHistory, error)

	// ListByNoteID 获取笔记的历史记录，按创建顺序从旧到新
	ListByNoteID(ctx context.Context, noteID, uid int64) ([]*NoteHistory, error)

	// CountByNoteID 获取笔记的历史记录数量
	CountByNoteID(ctx context.Context, noteID, uid int64) (int64, error)

	// Restore 将历史快照写回笔记并删除该快照，二者在同一事务内完成
	// 笔记的版本号被设置为快照的版本号
	Restore(ctx context.Context, history *NoteHistory, uid int64) (*Note, error)

	// Delete 删除单条历史记录
	Delete(ctx context.Context, id, uid int64) error

	// DeleteBeforeTime 删除指定时间之前创建的历史记录，用于保留期清理
	DeleteBeforeTime(ctx context.Context, timestamp int64) (int64, error)
}
