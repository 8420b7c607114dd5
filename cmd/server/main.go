package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/foodhub/backend/internal/application/cart"
	catalogapp "github.com/foodhub/backend/internal/application/catalog"
	identityapp "github.com/foodhub/backend/internal/application/identity"
	orderingapp "github.com/foodhub/backend/internal/application/ordering"
	reviewapp "github.com/foodhub/backend/internal/application/review"
	statsapp "github.com/foodhub/backend/internal/application/stats"
	"github.com/foodhub/backend/internal/infrastructure/auth"
	"github.com/foodhub/backend/internal/infrastructure/cache"
	"github.com/foodhub/backend/internal/infrastructure/config"
	"github.com/foodhub/backend/internal/infrastructure/event"
	"github.com/foodhub/backend/internal/infrastructure/logger"
	"github.com/foodhub/backend/internal/infrastructure/messaging"
	"github.com/foodhub/backend/internal/infrastructure/persistence"
	"github.com/foodhub/backend/internal/infrastructure/scheduler"
	"github.com/foodhub/backend/internal/infrastructure/telemetry"
	"github.com/foodhub/backend/internal/interfaces/http/handler"
	"github.com/foodhub/backend/internal/interfaces/http/middleware"
	"github.com/foodhub/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/foodhub/backend/docs"
)

//	@title			FoodHub Backend API
//	@version		1.0
//	@description	Food ordering marketplace API: restaurants, menus, carts, orders and reviews
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting FoodHub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Telemetry
	tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()
	mp, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()
	meter := mp.Meter(cfg.Telemetry.ServiceName)

	// Ship zap records to the collector alongside traces and metrics
	lp, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		if err := lp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()
	log = logger.WithOTELBridge(log, lp.Provider(), cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level))

	// Database with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level)).
		WithFullSQL(cfg.Telemetry.DBLogFullSQL)
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

	dbTracingCfg := telemetry.DefaultDBTracingConfig()
	dbTracingCfg.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	dbTracingCfg.LogFullSQL = cfg.Telemetry.DBLogFullSQL
	if err := telemetry.NewDBTracingPlugin(dbTracingCfg, log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	dbMetrics, err := telemetry.NewDBMetrics(meter, 0, log)
	if err != nil {
		log.Fatal("Failed to create database metrics", zap.Error(err))
	}
	if err := dbMetrics.Register(db.DB); err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}
	dbMetrics.StartPoolStatsCollection(ctx)
	defer dbMetrics.Stop()

	// Redis or in-memory fallback for tokens, idempotency and the stats cache
	backend, err := cache.NewBackend(cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to initialize cache backend", zap.Error(err))
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Error("Error closing cache backend", zap.Error(err))
		}
	}()
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if backend.Client != nil {
		blacklist = auth.NewRedisTokenBlacklist(backend.Client)
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	restaurantRepo := persistence.NewGormRestaurantRepository(db.DB)
	menuRepo := persistence.NewGormMenuItemRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)

	// Domain event bus
	bus := event.NewInMemoryEventBus(log)

	// Application services
	carts := cartapp.NewSessionStore(cfg.Cart.IdleTTL)
	orderService := orderingapp.NewOrderService(orderRepo, restaurantRepo, userRepo, cfg.Ordering, log)
	orderService.SetEventPublisher(bus)
	cartService := cartapp.NewCartService(carts, menuRepo, restaurantRepo, orderService, log)
	authService := identityapp.NewAuthService(userRepo, auth.NewJWTService(cfg.JWT), blacklist, log).
		WithSessionCloser(cartService)
	reviewService := reviewapp.NewReviewService(reviewRepo, orderRepo, restaurantRepo, log)
	reviewService.SetEventPublisher(bus)
	restaurantService := catalogapp.NewRestaurantService(restaurantRepo, menuRepo, userRepo, log)
	menuService := catalogapp.NewMenuService(restaurantRepo, menuRepo, log)
	statsService := statsapp.NewStatsService(restaurantRepo, menuRepo, orderRepo, reviewRepo,
		cache.NewJSONCache(backend.Store, statsapp.CacheNamespace, cfg.Stats.CacheTTL), log)

	// Event subscribers
	bus.Subscribe(statsapp.NewCacheInvalidator(statsService))
	businessMetrics, err := telemetry.NewBusinessMetrics(meter, log)
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}
	bus.Subscribe(statsapp.NewMetricsRecorder(businessMetrics))

	publisher, err := messaging.NewPublisher(cfg.Messaging, log)
	if err != nil {
		log.Fatal("Failed to initialize event forwarding", zap.Error(err))
	}
	if publisher != nil {
		bus.Subscribe(messaging.NewForwarder(publisher))
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error("Error closing event publisher", zap.Error(err))
			}
		}()
	}
	if err := bus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Background jobs
	jobs := scheduler.NewScheduler(scheduler.DefaultConfig(), log)
	jobs.Register(cartapp.SweepJobName, cartapp.NewSweepExecutor(carts, log))
	triggers := []*scheduler.PeriodicTrigger{
		scheduler.NewPeriodicTrigger(cartapp.SweepJobName, cfg.Cart.SweepInterval, jobs, log),
	}
	if cfg.Review.ReconcileEnabled {
		jobs.Register(reviewapp.ReconcileJobName,
			reviewapp.NewReconciler(reviewRepo, orderRepo, cfg.Review.ReconcileBatch, log))
		triggers = append(triggers,
			scheduler.NewPeriodicTrigger(reviewapp.ReconcileJobName, cfg.Review.ReconcileInterval, jobs, log))
	}
	if err := jobs.Start(ctx); err != nil {
		log.Fatal("Failed to start scheduler", zap.Error(err))
	}
	for _, trigger := range triggers {
		if err := trigger.Start(ctx); err != nil {
			log.Fatal("Failed to start job trigger", zap.Error(err))
		}
	}

	// Health checks
	checks := []handler.HealthCheck{{Name: "database", Ping: db.Ping}}
	if backend.Client != nil {
		checks = append(checks, handler.HealthCheck{Name: "redis", Ping: func(ctx context.Context) error {
			return backend.Client.Ping(ctx).Err()
		}})
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine, err := router.NewEngine(router.Config{
		Logger:        log,
		Authenticator: authService,
		Idempotency:   cache.NewIdempotencyStore(backend.Store, cfg.Ordering.IdempotencyTTL),
		Meter:         meter,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		CORS:           corsConfig,
		Security:       middleware.DefaultSecurityConfig(),
		TrustedProxies: cfg.HTTP.TrustedProxies,
	}, router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Restaurants: handler.NewRestaurantHandler(restaurantService),
		Orders:      handler.NewOrderHandler(orderService),
		Reviews:     handler.NewReviewHandler(reviewService),
		Cart:        handler.NewCartHandler(cartService),
		Merchant: handler.NewMerchantHandler(handler.MerchantServices{
			Restaurants: restaurantService,
			Menu:        menuService,
			Orders:      orderService,
			Reviews:     reviewService,
			Stats:       statsService,
		}),
		Health: handler.NewHealthHandler(checks...),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	for _, trigger := range triggers {
		if err := trigger.Stop(shutdownCtx); err != nil {
			log.Warn("Error stopping job trigger", zap.Error(err))
		}
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		log.Warn("Error stopping scheduler", zap.Error(err))
	}
	if err := bus.Stop(shutdownCtx); err != nil {
		log.Warn("Error stopping event bus", zap.Error(err))
	}
	stop()

	log.Info("Server exited gracefully")
}
