package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/arts-admin-api/api/swagger"
	"github.com/noah-isme/arts-admin-api/internal/handler"
	"github.com/noah-isme/arts-admin-api/internal/middleware"
	"github.com/noah-isme/arts-admin-api/internal/repository"
	"github.com/noah-isme/arts-admin-api/internal/service"
	"github.com/noah-isme/arts-admin-api/pkg/cache"
	"github.com/noah-isme/arts-admin-api/pkg/config"
	"github.com/noah-isme/arts-admin-api/pkg/database"
	"github.com/noah-isme/arts-admin-api/pkg/jobs"
	"github.com/noah-isme/arts-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/arts-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/arts-admin-api/pkg/middleware/requestid"
	"github.com/noah-isme/arts-admin-api/pkg/session"
	"github.com/noah-isme/arts-admin-api/pkg/storage"
)

// @title Cultural Arts Admin API
// @version 1.0.0
// @description Administration backend for the cultural arts office: events, student artists, borrowing and repairs.
// @BasePath /api/v1
// @schemes http https

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, dashboard caching disabled", zap.Error(err))
		redisClient = nil
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	store, err := newObjectStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	metrics := service.NewMetricsService()
	validate := validator.New()

	cleaner := service.NewImageCleaner(store, metrics, jobs.QueueConfig{
		Workers:    cfg.Cleanup.Workers,
		MaxRetries: cfg.Cleanup.Retries,
		RetryDelay: 2 * time.Second,
		JobTimeout: 30 * time.Second,
		Logger:     logr,
	})
	cleaner.Start(context.Background())
	defer cleaner.Stop()

	userRepo := repository.NewUserRepository(db)
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, redisClient != nil)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	distributionSvc := service.NewDistributionService(repository.NewDistributionRepository(db), cacheSvc, metrics, cfg.Dashboard.CacheTTL, logr)
	studentSvc := service.NewStudentService(repository.NewStudentRepository(db), distributionSvc, cfg.CulturalGroups, validate, logr)
	borrowingSvc := service.NewBorrowingService(repository.NewBorrowingRepository(db), metrics, logr)
	repairSvc := service.NewRepairService(repository.NewRepairRepository(db), metrics)
	eventSvc := service.NewEventService(
		repository.NewEventRepository(db),
		store,
		storage.NewSignedURLSigner(cfg.Storage.SignedURLSecret, cfg.Storage.SignedURLTTL),
		cleaner,
		service.EventServiceConfig{MaxUploadBytes: cfg.Storage.MaxUploadBytes, ImageURLPrefix: cfg.APIPrefix + "/events/image/"},
		logr,
	)

	sessions, err := session.NewManager(cfg.Session, cfg.JWT.Expiration)
	if err != nil {
		return fmt.Errorf("init sessions: %w", err)
	}
	policy, err := middleware.NewPolicy(middleware.DefaultPolicies, cfg.Session.LoginPath, metrics, logr)
	if err != nil {
		return fmt.Errorf("init policy: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metrics))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Session(authSvc, sessions))

	handler.RegisterRoutes(r, handler.RouteConfig{
		APIPrefix:    cfg.APIPrefix,
		LoginPath:    cfg.Session.LoginPath,
		Policy:       policy,
		Audit:        userRepo,
		LoginLimiter: middleware.NewRateLimiter(cfg.RateLimit.LoginRequests, cfg.RateLimit.LoginWindow),
		CSRF: middleware.CSRF(middleware.CSRFConfig{
			Enabled:        cfg.CSRF.Enabled,
			AuthKey:        []byte(cfg.CSRF.AuthKey),
			Secure:         cfg.Session.Secure,
			TrustedOrigins: cfg.CORS.AllowedOrigins,
		}),
		Logger: logr,
	}, handler.Handlers{
		Auth:      handler.NewAuthHandler(authSvc, sessions, logr),
		Borrowing: handler.NewBorrowingHandler(borrowingSvc),
		Repairs:   handler.NewRepairHandler(repairSvc),
		Dashboard: handler.NewDashboardHandler(distributionSvc),
		Students:  handler.NewStudentHandler(studentSvc),
		Events:    handler.NewEventHandler(eventSvc, cfg.Storage.MaxUploadBytes),
		Pages:     handler.NewPageHandler(cfg.WebDir),
		Metrics:   handler.NewMetricsHandler(metrics, readinessChecks(db, cacheRepo, redisClient != nil)...),
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newObjectStore(cfg config.StorageConfig) (storage.ObjectStore, error) {
	if cfg.Driver == config.StorageS3 {
		return storage.NewS3Storage(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
	}
	return storage.NewLocalStorage(cfg.Dir)
}

func readinessChecks(db *sqlx.DB, cacheRepo *repository.CacheRepository, cacheEnabled bool) []handler.ReadinessCheck {
	checks := []handler.ReadinessCheck{{Name: "database", Check: db.PingContext}}
	if cacheEnabled {
		checks = append(checks, handler.ReadinessCheck{Name: "cache", Check: cacheRepo.Ping})
	}
	return checks
}
