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

// CategoryHandler 分类 API 路由处理器
type CategoryHandler struct {
	*Handler
}

// NewCategoryHandler 创建 CategoryHandler 实例
func NewCategoryHandler(a *app.App) *CategoryHandler {
	return &CategoryHandler{Handler: NewHandler(a)}
}

// CategoryIDRequestParams 分类 ID 请求参数
type CategoryIDRequestParams struct {
	ID int64 `uri:"id" binding:"required"`
}

// List 获取分类列表
// @Summary 获取分类列表
// @Tags 分类
// @Security UserAuthToken
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.CategoryDTO} "成功"
// @Router /api/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	categories, err := h.App.CategoryService.List(c.Request.Context(), uid)
	if err != nil {
		h.logError(c.Request.Context(), "CategoryHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(categories))
}

// Create 创建分类
// @Summary 创建分类
// @Tags 分类
// @Security UserAuthToken
// @Produce json
// @Param body body dto.CategoryCreateRequest true "分类参数"
// @Success 200 {object} pkgapp.Res{data=dto.CategoryDTO} "成功"
// @Router /api/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.CategoryCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("CategoryHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	category, err := h.App.CategoryService.Create(c.Request.Context(), uid, params)
	if err != nil {
		h.logError(c.Request.Context(), "CategoryHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(category))
}

// Update 重命名分类
// @Summary 重命名分类
// @Tags 分类
// @Security UserAuthToken
// @Produce json
// @Param id path int64 true "分类 ID"
// @Param body body dto.CategoryUpdateRequest true "分类参数"
// @Success 200 {object} pkgapp.Res{data=dto.CategoryDTO} "成功"
// @Router /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uri := &CategoryIDRequestParams{}
	if err := c.ShouldBindUri(uri); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	params := &dto.CategoryUpdateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("CategoryHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	category, err := h.App.CategoryService.Update(c.Request.Context(), uid, uri.ID, params)
	if err != nil {
		h.logError(c.Request.Context(), "CategoryHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(category))
}

// Delete 删除分类
// @Summary 删除分类
// @Description 删除未被任何笔记引用的分类
// @Tags 分类
// @Security UserAuthToken
// @Produce json
// @Param id path int64 true "分类 ID"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uri := &CategoryIDRequestParams{}
	if err := c.ShouldBindUri(uri); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	if err := h.App.CategoryService.Delete(c.Request.Context(), uid, uri.ID); err != nil {
		h.logError(c.Request.Context(), "CategoryHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
