package cmd

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	internalApp "github.com/notevault/note-vault-service/internal/app"
	"github.com/notevault/note-vault-service/internal/dao"
	"github.com/notevault/note-vault-service/internal/model"
	"github.com/notevault/note-vault-service/internal/routers"
	"github.com/notevault/note-vault-service/internal/task"
	"github.com/notevault/note-vault-service/pkg/logger"
	"github.com/notevault/note-vault-service/pkg/safe_close"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultSecretKeys 定义需要检测的默认密钥列表
var defaultSecretKeys = []string{
	"note-vault-Auth-Token",
	"",
}

type Server struct {
	logger            *zap.Logger            // 日志对象
	config            *internalApp.AppConfig // 应用配置（注入的依赖）
	db                *gorm.DB               // 数据库连接
	ut                *ut.UniversalTranslator
	httpServer        *http.Server
	privateHttpServer *http.Server
	sc                *safe_close.SafeClose
	app               *internalApp.App // App Container
}

// checkSecurityConfigWithConfig 检查安全配置，如果使用默认密钥则输出警告
func checkSecurityConfigWithConfig(cfg *internalApp.AppConfig, lg *zap.Logger) {
	isDefault := false
	for _, key := range defaultSecretKeys {
		if cfg.Security.AuthTokenKey == key {
			isDefault = true
			break
		}
	}

	if isDefault {
		fmt.Println()
		fmt.Println(strings.Repeat("=", 60))
		fmt.Println("⚠️  SECURITY WARNING: Using default secret key!")
		fmt.Println()
		fmt.Println("Please modify 'security.auth-token-key' in config.yaml")
		fmt.Println("Generate a secure key with:")
		fmt.Println("  openssl rand -base64 32")
		fmt.Println(strings.Repeat("=", 60))
		fmt.Println()

		if lg != nil {
			lg.Warn("Using default secret key - please change security.auth-token-key in config.yaml")
		}
	}
}

func NewServer(runEnv *runFlags) (*Server, error) {

	// 使用 LoadConfig 直接加载配置到 AppConfig
	appConfig, configRealpath, err := internalApp.LoadConfig(runEnv.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 命令行参数覆盖配置文件
	if len(runEnv.port) > 0 {
		appConfig.Server.HttpPort = ":" + strings.TrimPrefix(runEnv.port, ":")
	}

	runMode := runEnv.runMode
	if len(runMode) <= 0 {
		runMode = appConfig.Server.RunMode
	}

	if len(runMode) > 0 {
		gin.SetMode(runMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config: appConfig,
		sc:     safe_close.New(),
	}

	// 初始化日志器（使用注入的配置）
	lg, err := logger.NewLogger(logger.Config{
		Level:      appConfig.Log.Level,
		File:       appConfig.Log.File,
		Production: appConfig.Log.Production,
	})
	if err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}
	s.logger = lg

	// 检查安全配置
	checkSecurityConfigWithConfig(appConfig, s.logger)

	// 初始化数据库并执行迁移
	db, err := dao.NewDBEngine(appConfig.Database, runMode)
	if err != nil {
		return nil, fmt.Errorf("initDatabase: %w", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("autoMigrate: %w", err)
	}
	s.db = db

	// 初始化 App Container
	app, err := internalApp.NewApp(appConfig, s.logger, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create app container: %w", err)
	}
	s.app = app

	// 初始化验证器
	uni, err := initValidator()
	if err != nil {
		return nil, fmt.Errorf("initValidator: %w", err)
	}
	s.ut = uni

	// 启动历史快照清理调度
	if err := task.NewHistoryCleanupTask(app).Start(s.sc); err != nil {
		return nil, fmt.Errorf("history cleanup task: %w", err)
	}

	banner := `
    _   __      __        _    __            ____
   / | / /___  / /____   | |  / /___ ___  __/ / /_
  /  |/ / __ \/ __/ _ \  | | / / __ ` + "`" + `/ / / / / __/
 / /|  / /_/ / /_/  __/  | |/ / /_/ / /_/ / / /_
/_/ |_/\____/\__/\___/   |___/\__,_/\__,_/_/\__/   `
	s.logger.Warn(fmt.Sprintf("%s\n\n%s v%s\nGit: %s\nBuildTime: %s\n", banner, internalApp.Name, internalApp.Version, internalApp.GitTag, internalApp.BuildTime))

	s.logger.Warn("config loaded", zap.String("path", configRealpath))

	// 启动 HTTP API 服务器
	if httpAddr := appConfig.Server.HttpPort; len(httpAddr) > 0 {
		s.logger.Warn("api_router", zap.String("config.server.HttpPort", appConfig.Server.HttpPort))
		s.httpServer = &http.Server{
			Addr:           appConfig.Server.HttpPort,
			Handler:        routers.NewRouter(s.app, s.ut),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.serveAttached(s.httpServer, "api service")
	}

	// 启动私有监控服务器
	if httpAddr := appConfig.Server.PrivateHttpListen; len(httpAddr) > 0 {
		s.logger.Info("api_router", zap.String("config.server.PrivateHttpListen", appConfig.Server.PrivateHttpListen))
		s.privateHttpServer = &http.Server{
			Addr:           appConfig.Server.PrivateHttpListen,
			Handler:        routers.NewPrivateRouterWithLogger(runMode, s.logger),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.serveAttached(s.privateHttpServer, "private api service")
	}

	// 注册 App Container 的优雅关闭
	closeSignal, done := s.sc.Attach()
	go func() {
		defer done()
		<-closeSignal
		if s.app != nil {
			if err := s.app.Shutdown(); err != nil {
				s.logger.Error("failed to shutdown app container", zap.Error(err))
			} else {
				s.logger.Info("App container shutdown gracefully")
			}
		}
	}()

	return s, nil
}

// serveAttached 启动 HTTP 服务器并挂接到关闭协调器
func (s *Server) serveAttached(srv *http.Server, name string) {
	closeSignal, done := s.sc.Attach()
	go func() {
		defer done()
		errChan := make(chan error, 1)
		go func() {
			errChan <- srv.ListenAndServe()
		}()
		select {
		case err := <-errChan:
			if err != nil && err != http.ErrServerClosed {
				s.logger.Error(name+" err", zap.Error(err))
				s.sc.SendCloseSignal()
			}
		case <-closeSignal:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				s.logger.Error(name+" shutdown error", zap.Error(err))
			}
		}
	}()
}

// initValidator 初始化验证器，返回 UniversalTranslator
func initValidator() (*ut.UniversalTranslator, error) {
	var uni *ut.UniversalTranslator

	validate, ok := binding.Validator.Engine().(*validatorV10.Validate)
	if ok {

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		uni = ut.New(en.New(), en.New(), zh.New())

		zhTran, _ := uni.GetTranslator("zh")
		enTran, _ := uni.GetTranslator("en")

		err := zh_translations.RegisterDefaultTranslations(validate, zhTran)
		if err != nil {
			return nil, err
		}
		err = en_translations.RegisterDefaultTranslations(validate, enTran)
		if err != nil {
			return nil, err
		}
	}

	return uni, nil
}

// GetApp 获取 App Container
func (s *Server) GetApp() *internalApp.App {
	return s.app
}

// GetConfig 获取应用配置
func (s *Server) GetConfig() *internalApp.AppConfig {
	return s.config
}
