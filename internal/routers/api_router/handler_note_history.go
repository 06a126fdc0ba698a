package api_router

import (
	"github.com/notevault/note-vault-service/internal/app"
	pkgapp "github.com/notevault/note-vault-service/pkg/app"
	"github.com/notevault/note-vault-service/pkg/code"
	apperrors "github.com/notevault/note-vault-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NoteHistoryHandler 笔记历史 API 路由处理器
type NoteHistoryHandler struct {
	*Handler
}

// NewNoteHistoryHandler 创建 NoteHistoryHandler 实例
func NewNoteHistoryHandler(a *app.App) *NoteHistoryHandler {
	return &NoteHistoryHandler{Handler: NewHandler(a)}
}

// NoteHistoryIDRequestParams 历史记录 ID 请求参数
type NoteHistoryIDRequestParams struct {
	ID int64 `uri:"id" binding:"required"`
}

// Get 获取单条笔记历史详情
// @Summary 获取笔记历史详情
// @Description 根据历史记录 ID 获取单条特定的笔记历史内容
// @Tags 笔记历史
// @Security UserAuthToken
// @Produce json
// @Param id path int64 true "历史记录 ID"
// @Success 200 {object} pkgapp.Res{data=dto.NoteHistoryDTO} "成功"
// @Router /api/histories/{id} [get]
func (h *NoteHistoryHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uri := &NoteHistoryIDRequestParams{}
	if err := c.ShouldBindUri(uri); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	history, err := h.App.NoteHistoryService.Get(c.Request.Context(), uid, uri.ID)
	if err != nil {
		h.logError(c.Request.Context(), "NoteHistoryHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(history))
}

// List 获取笔记的历史快照列表
// @Summary 获取笔记历史列表
// @Description 获取特定笔记的全部历史快照，从旧到新
// @Tags 笔记历史
// @Security UserAuthToken
// @Produce json
// @Param id path int64 true "笔记 ID"
// @Success 200 {object} pkgapp.Res{data=pkgapp.ListRes} "成功"
// @Router /api/notes/{id}/histories [get]
func (h *NoteHistoryHandler) List(c *gin.Context) {
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

	histories, count, err := h.App.NoteHistoryService.List(c.Request.Context(), uid, uri.ID)
	if err != nil {
		h.logError(c.Request.Context(), "NoteHistoryHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, histories, int(count))
}

// Restore 从历史快照还原笔记
// @Summary 从历史快照还原笔记
// @Description 将快照内容写回笔记并删除该快照，笔记版本号被设置为快照的版本号
// @Tags 笔记历史
// @Security UserAuthToken
// @Produce json
// @Param id path int64 true "历史记录 ID"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "成功"
// @Router /api/histories/{id}/restore [put]
func (h *NoteHistoryHandler) Restore(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uri := &NoteHistoryIDRequestParams{}
	if err := c.ShouldBindUri(uri); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	note, err := h.App.NoteHistoryService.RestoreFromHistory(c.Request.Context(), uid, uri.ID)
	if err != nil {
		h.logError(c.Request.Context(), "NoteHistoryHandler.Restore", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Delete 删除单条历史快照
// @Summary 删除历史快照
// @Tags 笔记历史
// @Security UserAuthToken
// @Produce json
// @Param id path int64 true "历史记录 ID"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/histories/{id} [delete]
func (h *NoteHistoryHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uri := &NoteHistoryIDRequestParams{}
	if err := c.ShouldBindUri(uri); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	if err := h.App.NoteHistoryService.Delete(c.Request.Context(), uid, uri.ID); err != nil {
		h.logError(c.Request.Context(), "NoteHistoryHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
