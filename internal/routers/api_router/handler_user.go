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

// UserHandler 用户 API 路由处理器
type UserHandler struct {
	*Handler
}

// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(a *app.App) *UserHandler {
	return &UserHandler{Handler: NewHandler(a)}
}

// Register 用户注册
// @Summary 用户注册
// @Tags 用户
// @Produce json
// @Param body body dto.UserCreateRequest true "注册参数"
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO} "成功"
// @Router /api/user/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.Register.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	user, err := h.App.UserService.Register(c.Request.Context(), params, pkgapp.GetRequestIP(c))
	if err != nil {
		h.logError(c.Request.Context(), "UserHandler.Register", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(user))
}

// Login 用户登录
// @Summary 用户登录
// @Tags 用户
// @Produce json
// @Param body body dto.UserLoginRequest true "登录参数"
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO} "成功"
// @Router /api/user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserLoginRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.Login.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	user, err := h.App.UserService.Login(c.Request.Context(), params, pkgapp.GetRequestIP(c))
	if err != nil {
		h.logError(c.Request.Context(), "UserHandler.Login", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(user))
}

// UserInfo 获取当前用户信息
// @Summary 获取当前用户信息
// @Tags 用户
// @Security UserAuthToken
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO} "成功"
// @Router /api/user/info [get]
func (h *UserHandler) UserInfo(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	user, err := h.App.UserService.Get(c.Request.Context(), uid)
	if err != nil {
		h.logError(c.Request.Context(), "UserHandler.UserInfo", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(user))
}
