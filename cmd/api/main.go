package main

// @title Campus Commute Service API
// @version 1.0.0
// @description Campus bus tracking backend: drivers report GPS positions, riders query live commute status, arrival estimates and scheduled buses, and operators manage buses, routes and schedules.
// @description
// @description Main capabilities:
// @description - Driver position ingest with timestamp-ordered in-memory tracking
// @description - Geofence-based commute direction classification (INCOMING/OUTGOING)
// @description - Matching of riders to live buses with ETA estimates
// @description - Live per-bus position streaming over websocket
// @description - Fleet administration: buses, routes, schedules

// @contact.name API Support
// @contact.email support@campus-commute-service.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/campus-commute-service/docs"
	"github.com/campus-commute-service/internal/config"
	httpDelivery "github.com/campus-commute-service/internal/delivery/http"
	"github.com/campus-commute-service/internal/delivery/http/handler"
	"github.com/campus-commute-service/internal/delivery/ws"
	"github.com/campus-commute-service/internal/metrics"
	"github.com/campus-commute-service/internal/pkg/logger"
	"github.com/campus-commute-service/internal/positions"
	"github.com/campus-commute-service/internal/repository/cache"
	"github.com/campus-commute-service/internal/repository/postgres"
	redisRepo "github.com/campus-commute-service/internal/repository/redis"
	"github.com/campus-commute-service/internal/usecase"
	"github.com/campus-commute-service/internal/worker"
	"github.com/campus-commute-service/internal/worker/broadcast"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Campus Commute Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

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

	// 6. Initialize repositories and shared infrastructure
	busRepo := postgres.NewBusRepository(db)
	routeRepo := postgres.NewRouteRepository(db)
	stopRepo := postgres.NewStopRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	userRepo := postgres.NewUserRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	positionStore := positions.NewStore()
	collector := metrics.NewCollector()
	hub := ws.NewHub(cfg.Live.SubscriberBuffer, log, collector)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	authUC := usecase.NewAuthUseCase(
		userRepo,
		log,
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL,
	)

	ingestUC := usecase.NewIngestUseCase(
		scheduleRepo,
		cacheRepo,
		streamRepo,
		positionStore,
		log,
		collector,
		cfg.Tracking.ScheduleCacheTTL,
	)

	commuteUC := usecase.NewCommuteUseCase(
		stopRepo,
		routeRepo,
		scheduleRepo,
		positionStore,
		log,
		collector,
		cfg.Campus,
		cfg.Tracking,
	)

	fleetUC := usecase.NewFleetUseCase(
		busRepo,
		routeRepo,
		stopRepo,
		scheduleRepo,
		cacheRepo,
		log,
	)

	driverUC := usecase.NewDriverUseCase(
		busRepo,
		scheduleRepo,
		log,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authUC, log)
	studentHandler := handler.NewStudentHandler(commuteUC, log)
	driverHandler := handler.NewDriverHandler(ingestUC, driverUC, log)
	adminHandler := handler.NewAdminHandler(fleetUC, log)
	liveHandler := handler.NewLiveHandler(hub, cfg.Live, log)

	log.Info("HTTP handlers initialized")

	// 9. Start the live fan-out dispatcher alongside the API. It bridges the
	// position stream into the websocket hub in this process.
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	dispatcher := broadcast.NewDispatcher(streamRepo, hub, log)
	workerManager := worker.NewManager(log)
	workerManager.Register(dispatcher)

	if err := workerManager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start broadcast dispatcher", zap.Error(err))
	}

	// 10. Initialize and start HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		authUC,
		authHandler,
		studentHandler,
		driverHandler,
		adminHandler,
		liveHandler,
		collector,
	)

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	workerCancel()
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping broadcast dispatcher", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
