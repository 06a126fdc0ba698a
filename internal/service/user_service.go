// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"context"

	"github.com/notevault/note-vault-service/internal/domain"
	"github.com/notevault/note-vault-service/internal/dto"
	"github.com/notevault/note-vault-service/pkg/app"
	"github.com/notevault/note-vault-service/pkg/code"
	"github.com/notevault/note-vault-service/pkg/logger"
	"github.com/notevault/note-vault-service/pkg/timex"
	"github.com/notevault/note-vault-service/pkg/util"

	"go.uber.org/zap"
)

// UserService defines the user business service interface
// UserService 定义用户业务服务接口
type UserService interface {
	// Register creates a new user account and returns a signed token
	// Register 创建新用户并返回签发的令牌
	Register(ctx context.Context, params *dto.UserCreateRequest, ip string) (*dto.UserDTO, error)

	// Login verifies credentials and returns a signed token
	// Login 校验凭证并返回签发的令牌
	Login(ctx context.Context, params *dto.UserLoginRequest, ip string) (*dto.UserDTO, error)

	// Get retrieves user info by UID
	// Get 根据 UID 获取用户信息
	Get(ctx context.Context, uid int64) (*dto.UserDTO, error)
}

// userService 实现 UserService 接口
type userService struct {
	userRepo     domain.UserRepository
	tokenManager app.TokenManager
	logger       *zap.Logger
	config       *AppServiceConfig
}

// NewUserService creates UserService instance
// NewUserService 创建 UserService 实例
func NewUserService(userRepo domain.UserRepository, tm app.TokenManager, l *zap.Logger, config *AppServiceConfig) UserService {
	if config == nil {
		config = &AppServiceConfig{RegisterEnabled: true}
	}
	return &userService{
		userRepo:     userRepo,
		tokenManager: tm,
		logger:       l,
		config:       config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *userService) domainToDTO(user *domain.User) *dto.UserDTO {
	if user == nil {
		return nil
	}
	return &dto.UserDTO{
		UID:       user.UID,
		Email:     user.Email,
		Nickname:  user.Nickname,
		Document:  user.Document,
		CreatedAt: timex.Time(user.CreatedAt),
		UpdatedAt: timex.Time(user.UpdatedAt),
	}
}

// Register 创建新用户并返回签发的令牌
func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest, ip string) (*dto.UserDTO, error) {
	if !s.config.RegisterEnabled {
		return nil, code.ErrorUserRegisterDisabled
	}

	// 邮箱唯一
	exist, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if exist != nil {
		return nil, code.ErrorUserEmailExists
	}

	// 证件号唯一（可选字段）
	if params.Document != "" {
		exist, err = s.userRepo.GetByDocument(ctx, params.Document)
		if err != nil {
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		if exist != nil {
			return nil, code.ErrorUserDocumentExists
		}
	}

	hashed, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorUserCreateFailed.WithDetails(err.Error())
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Email:    params.Email,
		Nickname: params.Nickname,
		Document: params.Document,
		Password: hashed,
	})
	if err != nil {
		s.logger.Error("user create failed",
			zap.String(logger.FieldMethod, "userService.Register"),
			zap.Error(err),
		)
		// 并发注册穿过预检时由唯一约束兜底
		return nil, storeError(err)
	}

	token, err := s.tokenManager.Generate(user.UID, user.Nickname, ip)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	result := s.domainToDTO(user)
	result.Token = token
	return result, nil
}

// Login 校验凭证并返回签发的令牌
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, ip string) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	// 用户不存在与密码错误返回同一错误，避免探测已注册邮箱
	if user == nil {
		return nil, code.ErrorUserPasswordIncorrect
	}
	if !util.CheckPasswordHash(user.Password, params.Password) {
		return nil, code.ErrorUserPasswordIncorrect
	}

	token, err := s.tokenManager.Generate(user.UID, user.Nickname, ip)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	result := s.domainToDTO(user)
	result.Token = token
	return result, nil
}

// Get 根据 UID 获取用户信息
func (s *userService) Get(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if user == nil {
		return nil, code.ErrorUserNotFound
	}
	return s.domainToDTO(user), nil
}
