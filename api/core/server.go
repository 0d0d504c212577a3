package core

import (
	"net/http"
	"time"

	"github.com/artfolio/gallery-backend/api/middleware"
	"github.com/artfolio/gallery-backend/cache"
	"github.com/artfolio/gallery-backend/config"
	"github.com/artfolio/gallery-backend/database"
	"github.com/artfolio/gallery-backend/internal/auth"
	svcExhibitions "github.com/artfolio/gallery-backend/internal/exhibitions"
	"github.com/artfolio/gallery-backend/internal/gallery"
	"github.com/artfolio/gallery-backend/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// ServerDependencies 服务器依赖项
type ServerDependencies struct {
	Provider          database.Provider
	StorageFactory    *storage.Factory
	CacheProvider     cache.Provider
	GalleryService    *gallery.Service
	ExhibitionService *svcExhibitions.Service
	LoginService      *auth.LoginService
}

// setupRouter 构建 gin 引擎并注册全部路由
func setupRouter(deps *ServerDependencies) (*gin.Engine, func()) {
	cfg := config.Get()
	router := gin.New()

	// 仅在开发版本时启用 gin 日志
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.BaseURL()},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.SetTrustedProxies(nil)

	// 限制上传文件大小
	router.MaxMultipartMemory = int64(cfg.UploadMaxSizeMB) << 20

	// 基础监控指标
	router.Use(middleware.Metrics())

	// 速率限制
	authRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitAuthRPS, cfg.RateLimitAuthBurst, cfg.RateLimitExpireTime)
	apiRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitApiRPS, cfg.RateLimitApiBurst, cfg.RateLimitExpireTime)
	imageRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitImageRPS, cfg.RateLimitImageBurst, cfg.RateLimitExpireTime)
	cleanup := func() {
		authRateLimiter.StopCleanup()
		apiRateLimiter.StopCleanup()
		imageRateLimiter.StopCleanup()
	}

	RegisterRoutes(router, deps, &RateLimiters{
		Auth:  authRateLimiter,
		API:   apiRateLimiter,
		Image: imageRateLimiter,
	})

	return router, cleanup
}

// StartServer 创建 http.Server，返回服务器与资源清理函数
func StartServer(deps *ServerDependencies) (*http.Server, func()) {
	cfg := config.Get()
	router, cleanup := setupRouter(deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return srv, cleanup
}
