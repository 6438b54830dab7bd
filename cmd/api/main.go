package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/comment-analytics/docs"
	pkgvalidator "github.com/johnquangdev/comment-analytics/pkg/validator"

	"github.com/johnquangdev/comment-analytics/internal/adapter/handler"
	"github.com/johnquangdev/comment-analytics/internal/adapter/repository"
	"github.com/johnquangdev/comment-analytics/internal/adapter/repository/mongostore"
	"github.com/johnquangdev/comment-analytics/internal/domain/repositories"
	"github.com/johnquangdev/comment-analytics/internal/infrastructure/cache"
	"github.com/johnquangdev/comment-analytics/internal/infrastructure/database"
	"github.com/johnquangdev/comment-analytics/internal/infrastructure/queue"
	"github.com/johnquangdev/comment-analytics/internal/infrastructure/storage"
	"github.com/johnquangdev/comment-analytics/internal/usecase/analysis"
	"github.com/johnquangdev/comment-analytics/internal/usecase/dashboard"
	pkgai "github.com/johnquangdev/comment-analytics/pkg/ai"
	"github.com/johnquangdev/comment-analytics/pkg/config"
)

// @title           Comment Analytics API
// @version         1.0
// @description     Analyses video comment sections with LLM extractors and serves per-video and dashboard analytics

// @BasePath  /v1

// stores groups the repositories of the selected driver
type stores struct {
	videos   repositories.VideoRepository
	corpora  repositories.CorpusRepository
	analyses repositories.AnalysisRepository
	close    func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		log.Println("📦 Connecting to MongoDB...")
		client, db, err := database.NewMongoDB(ctx, &cfg.Mongo)
		if err != nil {
			return nil, err
		}
		store := mongostore.NewStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = database.CloseMongo(context.Background(), client)
			return nil, err
		}
		return &stores{
			videos:   store,
			corpora:  store,
			analyses: store,
			close:    func() { _ = database.CloseMongo(context.Background(), client) },
		}, nil

	default:
		log.Println("📦 Connecting to database...")
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			return nil, err
		}

		// Production deployments should manage schema via cmd/migrate.
		if cfg.Database.AutoMigrate {
			if cfg.Server.Environment == "production" {
				return nil, fmt.Errorf("AutoMigrate is enabled in production; disable DB_AUTO_MIGRATE and run cmd/migrate")
			}
			if err := database.AutoMigrate(db); err != nil {
				return nil, err
			}
		} else {
			log.Println("🔄 Skipping auto-migrate; use cmd/migrate for schema migrations")
		}

		return &stores{
			videos:   repository.NewVideoRepository(db),
			corpora:  repository.NewCorpusRepository(db),
			analyses: repository.NewAnalysisRepository(db),
			close:    func() { _ = database.CloseDB(db) },
		}, nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	log.Println("🔧 Initializing dependencies...")
	rootCtx, stopRoot := context.WithCancel(context.Background())
	defer stopRoot()

	st, err := openStores(rootCtx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store %q: %v", cfg.Store.Driver, err)
	}
	defer st.close()

	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg.GetRedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	jobQueue := queue.NewRedisQueue(redisClient)

	var locker repositories.Locker
	switch cfg.Worker.LockBackend {
	case config.LockBackendMemory:
		log.Println("🔒 Using in-process video locks")
		locker = cache.NewMemoryLocker(cache.NewMemoryStore())
	default:
		locker = cache.NewRedisLocker(redisClient)
	}

	var archiver analysis.Archiver
	var snapshots handler.SnapshotLister
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to MinIO snapshot archive...")
		minioClient, err := storage.NewMinIOClient(rootCtx, &cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO: %v", err)
		}
		archiver = minioClient
		snapshots = minioClient
	}

	log.Printf("🤖 Initializing inference provider %q...", cfg.Inference.Provider)
	completer, err := pkgai.NewCompleter(rootCtx, &cfg.Inference)
	if err != nil {
		log.Fatalf("Failed to initialize inference provider: %v", err)
	}
	completer = pkgai.WithRetry(completer, cfg.Inference.RetryWindow)

	orchestrator := analysis.NewOrchestrator(st.videos, st.corpora, completer, cfg.Inference.CallTimeout, logger)
	analysisService := analysis.NewAnalysisService(analysis.Dependencies{
		Orchestrator: orchestrator,
		Videos:       st.videos,
		Corpora:      st.corpora,
		Analyses:     st.analyses,
		Queue:        jobQueue,
		Locker:       locker,
		Archiver:     archiver,
	}, cfg.Worker, logger)
	aggregator := dashboard.NewAggregator(st.videos, st.analyses, logger)

	log.Printf("👷 Starting %d analysis workers...", cfg.Worker.Count)
	if err := analysisService.StartWorkerPool(rootCtx, cfg.Worker.Count); err != nil {
		log.Fatalf("Failed to start worker pool: %v", err)
	}

	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg,
		handler.NewAnalysisController(analysisService, snapshots, logger),
		handler.NewDashboardController(aggregator, cfg.Dashboard, logger),
	)
	router.Setup(e)

	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	if err := analysisService.StopWorkerPool(); err != nil {
		log.Printf("⚠️  Failed to stop worker pool: %v", err)
	}
	stopRoot()

	log.Println("✅ Server stopped gracefully")
}
