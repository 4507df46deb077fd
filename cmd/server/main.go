package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appfinancing "github.com/motodms/backend/internal/application/financing"
	"github.com/motodms/backend/internal/infrastructure/cache"
	"github.com/motodms/backend/internal/infrastructure/config"
	"github.com/motodms/backend/internal/infrastructure/logger"
	"github.com/motodms/backend/internal/infrastructure/persistence"
	"github.com/motodms/backend/internal/interfaces/http/handler"
	"github.com/motodms/backend/internal/interfaces/http/middleware"
	"github.com/motodms/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting MotoDMS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Database
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// View cache invalidation. Redis is optional: the services degrade to a
	// no-op invalidator when it is unreachable.
	var views appfinancing.ViewInvalidator
	redisViews, err := cache.NewRedisViewInvalidator(cfg.Redis, cache.WithViewLogger(log))
	if err != nil {
		log.Warn("Redis unavailable, account view invalidation disabled", zap.Error(err))
		views = cache.NewNoopViewInvalidator()
	} else {
		defer func() {
			_ = redisViews.Close()
		}()
		views = redisViews
		log.Info("Redis connected successfully", zap.String("addr", cfg.Redis.Addr()))
	}

	// Repositories
	accountRepo := persistence.NewGormCurrentAccountRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	motorcycleRepo := persistence.NewGormMotorcycleRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	// Application services
	accountService := appfinancing.NewAccountService(accountRepo, clientRepo, motorcycleRepo, views, log)
	paymentService := appfinancing.NewPaymentService(txManager, paymentRepo, views, log)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.OrgMiddleware())

	// Routes
	r := router.NewRouter(engine)
	r.Register(handler.NewSystemHandler(db))
	r.Register(handler.NewFinancingHandler(accountService, paymentService))
	r.Setup()

	// HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
