package core

import (
	"net/http"

	"github.com/artfolio/gallery-backend/api"
	"github.com/artfolio/gallery-backend/api/common"
	handlerExhibitions "github.com/artfolio/gallery-backend/api/handler/exhibitions"
	"github.com/artfolio/gallery-backend/api/handler/media"
	handlerPaintings "github.com/artfolio/gallery-backend/api/handler/paintings"
	"github.com/artfolio/gallery-backend/api/middleware"
	"github.com/artfolio/gallery-backend/config"
	"github.com/artfolio/gallery-backend/database/models"
	"github.com/gin-gonic/gin"
)

// RateLimiters 各路由组使用的限流器
type RateLimiters struct {
	Auth  *middleware.IPRateLimiter
	API   *middleware.IPRateLimiter
	Image *middleware.IPRateLimiter
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, deps *ServerDependencies, limiters *RateLimiters) {
	registerBasicRoutes(router, deps)
	registerPublicRoutes(router, deps, limiters)
	registerAPIRoutes(router, deps, limiters)
}

// registerBasicRoutes 注册基础路由
func registerBasicRoutes(router *gin.Engine, deps *ServerDependencies) {
	healthHandler := NewHealthHandler(deps)
	router.GET("/health", healthHandler.Handle)

	router.GET("/version", func(context *gin.Context) {
		common.RespondSuccess(context, gin.H{
			"version": config.Version,
			"commit":  config.CommitHash,
		})
	})

	router.GET("/metrics", func(context *gin.Context) {
		context.JSON(http.StatusOK, middleware.GetMetrics())
	})
}

// registerPublicRoutes 注册公共图片访问路由
func registerPublicRoutes(router *gin.Engine, deps *ServerDependencies, limiters *RateLimiters) {
	mediaHandler := media.NewHandler(deps.StorageFactory.GetDefault())

	publicGroup := router.Group("/images")
	publicGroup.Use(limiters.Image.Middleware())
	{
		publicGroup.GET("/:identifier", mediaHandler.GetImage)
	}

	thumbnailGroup := router.Group("/thumbnails")
	thumbnailGroup.Use(limiters.Image.Middleware())
	{
		thumbnailGroup.GET("/:identifier", mediaHandler.GetThumbnail)
	}
}

// registerAPIRoutes 注册 API 路由
func registerAPIRoutes(router *gin.Engine, deps *ServerDependencies, limiters *RateLimiters) {
	paintingHandler := handlerPaintings.NewHandler(deps.GalleryService)
	exhibitionHandler := handlerExhibitions.NewHandler(deps.ExhibitionService)
	loginHandler := api.NewLoginHandler(deps.LoginService)

	apiGroup := router.Group("/api")
	apiGroup.Use(func(context *gin.Context) { // 所有API禁止缓存
		context.Header("Cache-Control", "no-store")
		context.Next()
	})
	{
		// 认证路由
		authGroup := apiGroup.Group("/auth")
		authGroup.Use(limiters.Auth.Middleware())
		{
			authGroup.POST("/login", loginHandler.LoginHandlerFunc)          //POST /api/auth/login
			authGroup.POST("/refresh", loginHandler.RefreshTokenHandlerFunc) //POST /api/auth/refresh
			authGroup.POST("/logout", loginHandler.LogoutHandlerFunc)        //POST /api/auth/logout

			authGroup.GET("/verify", middleware.JWTAuth(), loginHandler.VerifyHandlerFunc)
			authGroup.POST("/change-password", middleware.JWTAuth(), loginHandler.ChangePasswordHandlerFunc)
		}

		// 公开查询路由
		publicAPI := apiGroup.Group("")
		publicAPI.Use(limiters.API.Middleware())
		{
			publicAPI.GET("/paintings", paintingHandler.ListPaintingsHandler)     //GET /api/paintings
			publicAPI.GET("/paintings/:id", paintingHandler.GetPaintingHandler)   //GET /api/paintings/{id}
			publicAPI.GET("/exhibitions", exhibitionHandler.ListExhibitionsHandler)
			publicAPI.GET("/exhibitions/:id", exhibitionHandler.GetExhibitionHandler)
		}

		// 管理路由，要求管理员角色
		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(limiters.API.Middleware())
		adminGroup.Use(middleware.JWTAuth())
		adminGroup.Use(middleware.RequireRole(models.RoleAdmin))
		{
			adminPaintings := adminGroup.Group("/paintings")
			{
				adminPaintings.GET("", paintingHandler.AdminListPaintingsHandler)
				adminPaintings.POST("", paintingHandler.CreatePaintingHandler)
				adminPaintings.POST("/reorder", paintingHandler.ReorderPaintingsHandler)
				adminPaintings.PUT("/:id", paintingHandler.UpdatePaintingHandler)
				adminPaintings.DELETE("/:id", paintingHandler.DeletePaintingHandler)
				adminPaintings.POST("/:id/image", paintingHandler.UploadImageHandler)
			}

			adminExhibitions := adminGroup.Group("/exhibitions")
			{
				adminExhibitions.GET("", exhibitionHandler.ListExhibitionsHandler)
				adminExhibitions.POST("", exhibitionHandler.CreateExhibitionHandler)
				adminExhibitions.POST("/reorder", exhibitionHandler.ReorderExhibitionsHandler)
				adminExhibitions.PUT("/:id", exhibitionHandler.UpdateExhibitionHandler)
				adminExhibitions.DELETE("/:id", exhibitionHandler.DeleteExhibitionHandler)
				adminExhibitions.POST("/:id/photos", exhibitionHandler.UploadPhotosHandler)
				adminExhibitions.POST("/:id/photos/reorder", exhibitionHandler.ReorderPhotosHandler)
				adminExhibitions.DELETE("/:id/photos/:photoId", exhibitionHandler.DeletePhotoHandler)
			}
		}
	}
}
