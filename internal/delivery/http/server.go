package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/config"
	"github.com/campus-commute-service/internal/delivery/http/handler"
	"github.com/campus-commute-service/internal/delivery/http/middleware"
	"github.com/campus-commute-service/internal/domain"
	"github.com/campus-commute-service/internal/metrics"
	"github.com/campus-commute-service/internal/usecase"
)

// Server is the Fiber HTTP server carrying the REST API and the live
// websocket endpoint.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	authUC *usecase.AuthUseCase

	authHandler    *handler.AuthHandler
	studentHandler *handler.StudentHandler
	driverHandler  *handler.DriverHandler
	adminHandler   *handler.AdminHandler
	liveHandler    *handler.LiveHandler

	collector *metrics.Collector
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authUC *usecase.AuthUseCase,
	authHandler *handler.AuthHandler,
	studentHandler *handler.StudentHandler,
	driverHandler *handler.DriverHandler,
	adminHandler *handler.AdminHandler,
	liveHandler *handler.LiveHandler,
	collector *metrics.Collector,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Campus Commute Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		authUC:         authUC,
		authHandler:    authHandler,
		studentHandler: studentHandler,
		driverHandler:  driverHandler,
		adminHandler:   adminHandler,
		liveHandler:    liveHandler,
		collector:      collector,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	s.app.Get("/metrics", adaptor.HTTPHandler(s.collector.Handler()))

	api := s.app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	auth := api.Group("/auth")
	auth.Post("/login", s.authHandler.Login)
	auth.Post("/register", s.authHandler.Register)

	student := api.Group("/student",
		middleware.RequireAuth(s.authUC),
		middleware.RequireRole(string(domain.RoleStudent), string(domain.RoleAdmin)))
	student.Get("/commute-status", s.studentHandler.CommuteStatus)
	student.Get("/morning-buses", s.studentHandler.MorningBuses)
	student.Get("/nearby-stops", s.studentHandler.NearbyStops)
	student.Get("/buses/live", s.studentHandler.LiveBuses)

	driver := api.Group("/driver",
		middleware.RequireAuth(s.authUC),
		middleware.RequireRole(string(domain.RoleDriver)))
	driver.Post("/location", s.driverHandler.ReportLocation)
	driver.Get("/schedules/today", s.driverHandler.TodaySchedule)
	driver.Post("/schedules/:id/start", s.driverHandler.StartTrip)
	driver.Post("/schedules/:id/stop", s.driverHandler.StopTrip)

	admin := api.Group("/admin",
		middleware.RequireAuth(s.authUC),
		middleware.RequireRole(string(domain.RoleAdmin)))
	admin.Get("/buses", s.adminHandler.ListBuses)
	admin.Post("/buses", s.adminHandler.AddBus)
	admin.Get("/routes", s.adminHandler.ListRoutes)
	admin.Post("/routes", s.adminHandler.CreateRoute)
	admin.Post("/schedules", s.adminHandler.CreateSchedule)
	admin.Put("/schedules/:id", s.adminHandler.UpdateSchedule)

	// Live tracking over websocket. No auth on this route: bus positions
	// are broadcast to anyone on campus wifi, same as the display boards.
	s.app.Get("/ws/bus/:busNumber", s.liveHandler.Upgrade, s.liveHandler.BusStream())
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
