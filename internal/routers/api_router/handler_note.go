package api_router

import (
	"github.com/notevault/note-vault-service/internal/app"
	"github.com/notevault/note-vault-service/internal/dto"
	pkgapp "github.com/notevault/note-vault-service/pkg/app"
	"github.com/notevault/note-vault-service/pkg/code"
	apperrors "github.com/notevault/note-vault-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoteHandler 笔记 API 路由处理器
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{Handler: NewHandler(a)}
}

// NoteIDRequestParams 笔记 ID 请求参数
type NoteIDRequestParams struct {
	ID int64 `uri:"id" binding:"required"`
}

// Get 获取笔记详情
// @Summary 获取笔记详情
// @Tags 笔记
// @Security UserAuthToken
// @Produce json
// @Param id path int64 true "笔记 ID"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "成功"
// @Router /api/notes/{id} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uri := &NoteIDRequestParams{}
	if err := c.ShouldBindUri(uri); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	note, err := h.App.NoteService.Get(c.Request.Context(), uid, uri.ID)
	if err != nil {
		h.logError(c.Request.Context(), "NoteHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// List 获取笔记列表
// @Summary 获取笔记列表
// @Description 分页获取笔记，可按分类过滤
// @Tags 笔记
// @Security UserAuthToken
// @Produce json
// @Param categoryId query int64 false "分类 ID"
// @Param page query int false "页码"
// @Param pageSize query int false "每页数量"
// @Success 200 {object} pkgapp.Res{data=pkgapp.ListRes} "成功"
// @Router /api/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.List.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	pager := &pkgapp.Pager{
		Page: pkgapp.GetPage(c),
		PageSize: pkgapp.GetPageSizeWithConfig(c, pkgapp.PaginationConfig{
			DefaultPageSize: h.App.Config().App.DefaultPageSize,
			MaxPageSize:     h.App.Config().App.MaxPageSize,
		}),
	}

	notes, count, err := h.App.NoteService.List(c.Request.Context(), uid, params, pager)
	if err != nil {
		h.logError(c.Request.Context(), "NoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, notes, int(count))
}

// Create 创建笔记
// @Summary 创建笔记
// @Description 创建新笔记，初始版本号为 1
// @Tags 笔记
// @Security UserAuthToken
// @Produce json
// @Param body body dto.NoteCreateRequest true "笔记参数"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "成功"
// @Router /api/notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	note, err := h.App.NoteService.Create(c.Request.Context(), uid, params)
	if err != nil {
		h.logError(c.Request.Context(), "NoteHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Update 更新笔记
// @Summary 更新笔记
// @Description 应用带版本校验的修改，版本冲突时更新被拒绝且无任何持久化效果
// @Tags 笔记
// @Security UserAuthToken
// @Produce json
// @Param id path int64 true "笔记 ID"
// @Param body body dto.NoteUpdateRequest true "笔记参数，version 为客户端最后看到的版本号"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "成功"
// @Router /api/notes/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uri := &NoteIDRequestParams{}
	if err := c.ShouldBindUri(uri); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	params := &dto.NoteUpdateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	note, err := h.App.NoteService.Update(c.Request.Context(), uid, uri.ID, params)
	if err != nil {
		h.logError(c.Request.Context(), "NoteHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Delete 删除笔记
// @Summary 删除笔记
// @Description 删除笔记及其全部历史快照
// @Tags 笔记
// @Security UserAuthToken
// @Produce json
// @Param id path int64 true "笔记 ID"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uri := &NoteIDRequestParams{}
	if err := c.ShouldBindUri(uri); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	if err := h.App.NoteService.Delete(c.Request.Context(), uid, uri.ID); err != nil {
		h.logError(c.Request.Context(), "NoteHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
