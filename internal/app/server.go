package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"carrental-service/internal/config"
	"carrental-service/internal/db"
	authHandler "carrental-service/internal/handlers/auth"
	clientHandler "carrental-service/internal/handlers/client"
	reportHandler "carrental-service/internal/handlers/report"
	reservationHandler "carrental-service/internal/handlers/reservation"
	tariffHandler "carrental-service/internal/handlers/tariff"
	vehicleHandler "carrental-service/internal/handlers/vehicle"
	wsHandler "carrental-service/internal/handlers/ws"
	"carrental-service/internal/middleware"
	"carrental-service/internal/pkg/session"
	"carrental-service/internal/pkg/token"
	"carrental-service/internal/repository/postgres"
	authService "carrental-service/internal/service/auth"
	clientService "carrental-service/internal/service/client"
	reportService "carrental-service/internal/service/report"
	reservationService "carrental-service/internal/service/reservation"
	tariffService "carrental-service/internal/service/tariff"
	vehicleService "carrental-service/internal/service/vehicle"
	"carrental-service/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	http   *http.Server

	stopHub func()
}

func NewServer() *Server {
	cfg := config.Load()
	gin.SetMode(gin.ReleaseMode)
	return &Server{cfg: cfg, engine: gin.New()}
}

func (s *Server) Start() error {
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       s.cfg.RedisDB,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to redis", zap.String("addr", s.cfg.RedisAddr))

	// ----- JWT, sessions, rate limiting -----
	tokenManager, err := token.LoadAndBuild(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT keys: %w", err)
	}
	sessionManager := session.NewManager(redisClient)
	rateLimiter := session.NewRateLimiter(redisClient, s.cfg.LoginMaxAttempts, s.cfg.LoginWindow)

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	typeRepo := postgres.NewVehicleTypeRepository(pool)
	tariffRepo := postgres.NewTariffRepository(pool)
	reservationRepo := postgres.NewReservationRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	maintenanceRepo := postgres.NewMaintenanceRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	// ----- WebSocket event feed -----
	hub := ws.NewHub(logger)
	hubCtx, stopHub := context.WithCancel(ctx)
	s.stopHub = stopHub
	go hub.Run(hubCtx)

	// ----- Services -----
	authSvc := authService.NewAuthService(userRepo, tokenManager, sessionManager, rateLimiter, logger)
	clientSvc := clientService.NewClientService(clientRepo, reservationRepo, logger)
	vehicleSvc := vehicleService.NewVehicleService(vehicleRepo, typeRepo, maintenanceRepo, dbWrapper, hub, logger)
	tariffSvc := tariffService.NewTariffService(tariffRepo, logger)
	reservationSvc := reservationService.NewReservationService(
		reservationRepo, paymentRepo, vehicleRepo, clientRepo, tariffRepo,
		dbWrapper, hub, logger,
	)
	reportSvc := reportService.NewReportService(reportRepo, logger)

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:        authHandler.NewAuthHandler(authSvc),
		ClientHandler:      clientHandler.NewClientHandler(clientSvc),
		VehicleHandler:     vehicleHandler.NewVehicleHandler(vehicleSvc, s.cfg.ImageDir),
		TariffHandler:      tariffHandler.NewTariffHandler(tariffSvc),
		ReservationHandler: reservationHandler.NewReservationHandler(reservationSvc),
		ReportHandler:      reportHandler.NewReportHandler(reportSvc),
		WSHandler:          wsHandler.NewWSHandler(hub, logger),
		AuthMiddleware:     middleware.NewAuthMiddleware(tokenManager.Verifier, sessionManager),
	}

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)
	SetupRouter(s.engine, handlers)

	s.http = &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	logger.Info("server listening", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the event feed.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.stopHub != nil {
		s.stopHub()
	}
	if s.logger != nil {
		defer s.logger.Sync()
	}
	if s.http == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
