package routers

import (
	"time"

	"github.com/notevault/note-vault-service/internal/app"
	"github.com/notevault/note-vault-service/internal/middleware"
	"github.com/notevault/note-vault-service/internal/routers/api_router"
	"github.com/notevault/note-vault-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/user/register",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	limiter.BucketRule{
		Key:          "/api/user/login",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter 创建 API 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(app.Name, appContainer.Version().Version))
		if cfg.Tracer.Enabled {
			api.Use(middleware.TraceMiddleware(cfg.Tracer.Header)) // Trace ID 中间件
		}
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLog(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		userHandler := api_router.NewUserHandler(appContainer)
		categoryHandler := api_router.NewCategoryHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer)
		noteHistoryHandler := api_router.NewNoteHistoryHandler(appContainer)

		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)

		authed := api.Group("", middleware.UserAuthTokenWithConfig(cfg.Security.AuthTokenKey))

		authed.GET("/user/info", userHandler.UserInfo)

		authed.GET("/categories", categoryHandler.List)
		authed.POST("/categories", categoryHandler.Create)
		authed.PUT("/categories/:id", categoryHandler.Update)
		authed.DELETE("/categories/:id", categoryHandler.Delete)

		authed.GET("/notes", noteHandler.List)
		authed.POST("/notes", noteHandler.Create)
		authed.GET("/notes/:id", noteHandler.Get)
		authed.PUT("/notes/:id", noteHandler.Update)
		authed.DELETE("/notes/:id", noteHandler.Delete)

		authed.GET("/notes/:id/histories", noteHistoryHandler.List)
		authed.GET("/histories/:id", noteHistoryHandler.Get)
		authed.PUT("/histories/:id/restore", noteHistoryHandler.Restore)
		authed.DELETE("/histories/:id", noteHistoryHandler.Delete)
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
