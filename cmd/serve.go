package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/artfolio/gallery-backend/api"
	"github.com/artfolio/gallery-backend/api/core"
	"github.com/artfolio/gallery-backend/cache"
	"github.com/artfolio/gallery-backend/config"
	"github.com/artfolio/gallery-backend/database"
	repoAccounts "github.com/artfolio/gallery-backend/database/repo/accounts"
	repoExhibitions "github.com/artfolio/gallery-backend/database/repo/exhibitions"
	repoPaintings "github.com/artfolio/gallery-backend/database/repo/paintings"
	"github.com/artfolio/gallery-backend/internal/auth"
	svcExhibitions "github.com/artfolio/gallery-backend/internal/exhibitions"
	"github.com/artfolio/gallery-backend/internal/gallery"
	"github.com/artfolio/gallery-backend/storage"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start API server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer() {
	config.InitConfig()
	cfg := config.Get()

	if err := os.MkdirAll("./data", os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 数据库
	provider, err := database.NewGormProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	log.Printf("Initializing database, database type: %s", provider.Name())

	if err := database.Migrate(provider); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 仓库
	paintingsRepo := repoPaintings.NewRepository(provider.DB())
	exhibitionsRepo := repoExhibitions.NewRepository(provider.DB())
	accountsRepo := repoAccounts.NewRepository(provider.DB())
	devicesRepo := repoAccounts.NewDeviceRepository(provider.DB())

	// 首次启动创建默认管理员，随机密码打印到日志
	if password, err := accountsRepo.CreateDefaultAdminUser(); err != nil {
		log.Fatalf("Failed to ensure default admin user: %v", err)
	} else if password != "" {
		log.Printf("Created default admin user 'admin' with password: %s", password)
		log.Println("Please change this password immediately after first login.")
	}

	// 存储
	storageFactory, err := storage.NewFactory(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// 缓存
	cacheProvider, err := cache.NewProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	// JWT 与登录服务
	jwtService, err := auth.NewJWTService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}
	api.SetJWTService(jwtService)
	loginService := auth.NewLoginService(accountsRepo, devicesRepo, jwtService)

	// 领域服务
	galleryService := gallery.NewService(paintingsRepo, storageFactory.GetDefault(), cacheProvider, cfg)
	exhibitionService := svcExhibitions.NewService(exhibitionsRepo, storageFactory.GetDefault(), cacheProvider, cfg)

	deps := &core.ServerDependencies{
		Provider:          provider,
		StorageFactory:    storageFactory,
		CacheProvider:     cacheProvider,
		GalleryService:    galleryService,
		ExhibitionService: exhibitionService,
		LoginService:      loginService,
	}

	// 启动gin
	server, cleanup := core.StartServer(deps)
	go func() {
		log.Printf("Server started on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// 处理退出signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cleanup != nil {
		cleanup()
		log.Println("Cleanup tasks finished.")
	}

	if err := cacheProvider.Close(); err != nil {
		log.Printf("Error closing cache: %v", err)
	}
	if err := provider.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited successfully")
}
