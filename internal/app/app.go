// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"fmt"

	"github.com/notevault/note-vault-service/internal/dao"
	"github.com/notevault/note-vault-service/internal/domain"
	"github.com/notevault/note-vault-service/internal/service"
	pkgapp "github.com/notevault/note-vault-service/pkg/app"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// Repository 层
	UserRepo        domain.UserRepository
	CategoryRepo    domain.CategoryRepository
	NoteRepo        domain.NoteRepository
	NoteHistoryRepo domain.NoteHistoryRepository

	// Service 层
	UserService        service.UserService
	CategoryService    service.CategoryService
	NoteService        service.NoteService
	NoteHistoryService service.NoteHistoryService

	// 基础设施组件
	TokenManager pkgapp.TokenManager
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config: cfg,
		logger: logger,
		DB:     db,
	}

	// 初始化 DAO
	a.Dao = dao.New(db, logger)

	// 初始化 TokenManager
	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Issuer:    Name,
		Expiry:    cfg.GetTokenExpiry(),
	})

	// 初始化 Repository 层
	a.UserRepo = dao.NewUserRepository(a.Dao)
	a.CategoryRepo = dao.NewCategoryRepository(a.Dao)
	a.NoteRepo = dao.NewNoteRepository(a.Dao)
	a.NoteHistoryRepo = dao.NewNoteHistoryRepository(a.Dao)

	// 初始化 Service 层
	svcConfig := &service.AppServiceConfig{
		RegisterEnabled:      cfg.User.RegisterIsEnable,
		HistoryRetentionDays: cfg.App.HistoryRetentionDays,
	}
	a.UserService = service.NewUserService(a.UserRepo, a.TokenManager, logger, svcConfig)
	a.CategoryService = service.NewCategoryService(a.CategoryRepo, a.NoteRepo, logger)
	a.NoteService = service.NewNoteService(a.NoteRepo, a.CategoryRepo, logger)
	a.NoteHistoryService = service.NewNoteHistoryService(a.NoteHistoryRepo, a.NoteRepo, logger)

	return a, nil
}

// Config 返回应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 返回日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 返回版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// Shutdown 关闭应用容器持有的资源
func (a *App) Shutdown() error {
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				return err
			}
		}
	}
	_ = a.logger.Sync()
	return nil
}
