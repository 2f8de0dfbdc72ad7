package main

// @title Trip Planner API
// @version 1.0.0
// @description Мультимодальный планировщик поездок: маршруты OpenTripPlanner, фильтр доступности сервисов (paratransit, taxi, uber, lyft), тарифы и travel patterns с календарем бронирования.
// @description
// @description Основные возможности:
// @description - Планирование поездки по нескольким типам (transit, walk, paratransit, taxi, ...)
// @description - Асинхронное планирование через worker (Redis Streams)
// @description - Travel patterns агентства с календарем доступных дат

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/trip-planner/docs"
	"github.com/trip-planner/internal/config"
	httpDelivery "github.com/trip-planner/internal/delivery/http"
	"github.com/trip-planner/internal/delivery/http/handler"
	"github.com/trip-planner/internal/infrastructure/booking"
	"github.com/trip-planner/internal/infrastructure/farefinder"
	"github.com/trip-planner/internal/infrastructure/otp"
	"github.com/trip-planner/internal/pkg/logger"
	"github.com/trip-planner/internal/repository/cache"
	"github.com/trip-planner/internal/repository/postgres"
	redisRepo "github.com/trip-planner/internal/repository/redis"
	"github.com/trip-planner/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "trip-planner-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Trip Planner API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("router", cfg.Router.BaseURL),
		zap.String("router_version", cfg.Router.Version),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis (кеш + отдельный клиент для стримов)
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Redis connected")

	streamsClient, err := cache.NewRedisStreams(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis Streams", zap.Error(err))
	}

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	serviceRepo := postgres.NewServiceRepository(db)
	tripRepo := postgres.NewTripRepository(db)
	travelPatternRepo := postgres.NewTravelPatternRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(streamsClient, log)

	// Внешние системы
	bookingClient := booking.NewCachedClient(
		booking.NewClient(&cfg.Booking, log),
		cacheRepo,
		cfg.Cache.FundingCacheTTL,
		log,
	)
	fareFinder := farefinder.NewClient(&cfg.FareFinder, log)
	routers := otp.NewProvider(otp.NewConfig(&cfg.Router), log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	planner := usecase.NewTripPlanner(
		serviceRepo,
		tripRepo,
		routers,
		fareFinder,
		cfg.Planner.MaxWalkDistance,
		log,
	)
	tripUC := usecase.NewTripUseCase(planner, tripRepo, streamRepo, log)
	travelPatternUC := usecase.NewTravelPatternUseCase(travelPatternRepo, bookingClient, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	tripHandler := handler.NewTripHandler(tripUC, log)
	travelPatternHandler := handler.NewTravelPatternHandler(travelPatternUC, log)
	healthHandler := handler.NewHealthHandler(map[string]handler.HealthChecker{
		"postgres": db,
		"redis":    redisClient,
	})

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		tripHandler,
		travelPatternHandler,
		healthHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	if err := streamsClient.Close(); err != nil {
		log.Error("Failed to close Redis Streams", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
