package app

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vincehvac/servicepro-crm/internal/config"
	"github.com/vincehvac/servicepro-crm/internal/db"
	authHandler "github.com/vincehvac/servicepro-crm/internal/handlers/auth"
	"github.com/vincehvac/servicepro-crm/internal/handlers/crud"
	dashboardHandler "github.com/vincehvac/servicepro-crm/internal/handlers/dashboard"
	portalHandler "github.com/vincehvac/servicepro-crm/internal/handlers/portal"
	technicianHandler "github.com/vincehvac/servicepro-crm/internal/handlers/technician"
	"github.com/vincehvac/servicepro-crm/internal/middleware"
	"github.com/vincehvac/servicepro-crm/internal/pkg/jwt"
	"github.com/vincehvac/servicepro-crm/internal/pkg/session"
	"github.com/vincehvac/servicepro-crm/internal/repository/postgres"
	authUsecase "github.com/vincehvac/servicepro-crm/internal/service/auth"
	customersvc "github.com/vincehvac/servicepro-crm/internal/service/customer"
	dashboardUsecase "github.com/vincehvac/servicepro-crm/internal/service/dashboard"
	jobsvc "github.com/vincehvac/servicepro-crm/internal/service/job"
	techniciansvc "github.com/vincehvac/servicepro-crm/internal/service/technician"

	domaincustomer "github.com/vincehvac/servicepro-crm/internal/domain/customer"
	domainjob "github.com/vincehvac/servicepro-crm/internal/domain/job"
	domaintechnician "github.com/vincehvac/servicepro-crm/internal/domain/technician"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() (*Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &Server{cfg: cfg, engine: gin.New()}, nil
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- PostgreSQL -----
	pool, err := db.ConnectPostgres(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- Token & Session Managers -----
	tokenManager, err := jwt.NewManager(s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to build token manager: %w", err)
	}
	sessionManager := session.NewManager(session.NewRedisStore(redisClient), s.cfg.TokenTTL)

	// ----- Repositories -----
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	technicianRepo := postgres.NewTechnicianRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)

	// ----- Services -----
	customerService := customersvc.NewService(customerRepo, logger)
	technicianService := techniciansvc.NewService(technicianRepo, logger)
	jobService := jobsvc.NewService(jobRepo, logger)
	dashboardService := dashboardUsecase.NewService(jobRepo, technicianRepo)
	authService := authUsecase.NewService(userRepo, customerService, tokenManager, sessionManager, logger)

	// ----- Handlers -----
	handlers := &Handlers{
		Auth:       authHandler.NewAuthHandler(authService, logger),
		Portal:     portalHandler.NewPortalHandler(authService, jobService, logger),
		Dashboard:  dashboardHandler.NewDashboardHandler(dashboardService, logger),
		Technician: technicianHandler.NewTechnicianHandler(technicianService),

		Customers: crud.New[domaincustomer.Customer, domaincustomer.CreateRequest, domaincustomer.UpdateRequest](
			customerService,
			crud.Config{Resource: "customer", Searchable: true},
			logger,
		),
		Technicians: crud.New[domaintechnician.Technician, domaintechnician.CreateRequest, domaintechnician.UpdateRequest](
			technicianService,
			crud.Config{Resource: "technician"},
			logger,
		),
		Jobs: crud.New[domainjob.Job, domainjob.CreateRequest, domainjob.UpdateRequest](
			jobService,
			crud.Config{Resource: "job", Filters: []string{"status", "tech_id"}},
			logger,
		),

		AuthMiddleware: middleware.NewAuthMiddleware(authService),
	}

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	log.Printf("🚀 Server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
