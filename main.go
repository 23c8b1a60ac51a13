package main

import (
	"context"
	"os"
	"time"

	"prioritix/config"
	"prioritix/handler"
	"prioritix/middleware"
	"prioritix/repository"
	"prioritix/services"
	"prioritix/usecase"
	"prioritix/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// routerDeps is everything the HTTP layer needs, built once in main.
type routerDeps struct {
	Todos       *usecase.TodosService
	Analytics   *usecase.AnalyticsService
	Health      *handler.HealthHandler
	Revocations services.TokenRevocations
	Logger      *zap.Logger
}

func setupRouter(cfg config.AppConfig, deps routerDeps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))

	// Public routes (no authentication required)
	router.GET("/health", deps.Health.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	todoHandler := handler.NewTodoHandler(deps.Todos, cfg.Todos.DefaultPageLimit, cfg.Todos.MaxPageLimit)
	analyticsHandler := handler.NewAnalyticsHandler(deps.Analytics)

	// Protected routes (authentication required)
	api := router.Group("/api")
	api.Use(
		middleware.TimeoutMiddleware(cfg.Server.RequestTimeout),
		middleware.RequestSizeLimiter(cfg.Server.MaxBodyBytes),
		middleware.AuthMiddleware(middleware.AuthOptions{
			SecretKey:   cfg.Auth.SecretKey,
			Issuer:      cfg.Auth.Issuer,
			Revocations: deps.Revocations,
		}),
		middleware.NoStoreMiddleware(),
	)
	{
		todos := api.Group("/todos")
		{
			todos.GET("", todoHandler.ListTodos)
			todos.GET("/recent", todoHandler.RecentTodos)
			todos.POST("", middleware.RequireJSON(), todoHandler.CreateTodo)
			todos.PUT("/:id", middleware.RequireJSON(), todoHandler.UpdateTodo)
			todos.DELETE("/:id", todoHandler.DeleteTodo)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("", analyticsHandler.GetSummary)
			analytics.GET("/monthly", analyticsHandler.GetMonthly)
		}
	}

	return router
}

func main() {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := utils.NewLogger(utils.LogOptions{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	loc, _ := cfg.Location()
	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()
	client, err := repository.NewMongoClient(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("database unavailable", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Warn("disconnect from MongoDB", zap.Error(err))
		}
	}()

	collection := repository.TodosCollection(client, cfg.Database)
	indexes, err := repository.SetupIndexes(ctx, collection)
	if err != nil {
		logger.Fatal("create indexes", zap.Error(err))
	}
	logger.Info("indexes ready", zap.Strings("indexes", indexes))

	deps := routerDeps{
		Todos:     usecase.NewTodosService(repository.NewTodosRepo(collection)),
		Analytics: usecase.NewAnalyticsService(repository.NewAnalyticsRepo(collection, loc.String()), loc),
		Logger:    logger,
	}

	var cachePing handler.PingFunc
	if cfg.Redis.URL != "" {
		blacklist, err := services.NewTokenBlacklist(cfg.Redis.URL)
		if err != nil {
			logger.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		defer blacklist.Close()
		if err := blacklist.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, revocation checks will fail open", zap.Error(err))
		}
		deps.Revocations = blacklist
		cachePing = blacklist.Ping
	} else {
		logger.Info("REDIS_URL not set, token revocation disabled")
	}

	deps.Health = handler.NewHealthHandler(func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}, cachePing)

	router := setupRouter(cfg, deps)
	if err := runServer(cfg.Server, router, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
