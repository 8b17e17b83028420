package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"financeflow_backend/database"
	"financeflow_backend/internal/advisor"
	"financeflow_backend/internal/auth"
	"financeflow_backend/internal/config"
	"financeflow_backend/internal/email"
	"financeflow_backend/internal/handlers"
	"financeflow_backend/internal/logger"
	"financeflow_backend/internal/middleware"
	"financeflow_backend/internal/repositories"
	"financeflow_backend/internal/routes"
	"financeflow_backend/internal/services"
	"financeflow_backend/internal/validator"
	"financeflow_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}

	logger.Init(cfg.Server.Env, cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = logger.Sync() }()
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	apperrors.SetDebug(cfg.Server.Env == "development")
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := database.Connect(cfg.Database, cfg.Server.Env)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer func() { _ = database.Close(gormDB) }()

	if err := database.Ping(context.Background(), gormDB); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	rdb := database.NewRedis(cfg.Redis)
	defer func() { _ = rdb.Close() }()
	if err := database.PingRedis(context.Background(), rdb); err != nil {
		logger.Fatal("Redis unavailable", "error", err)
	}
	logger.Info("Redis connected", "address", cfg.Redis.Address)

	serviceContainer := initializeServices(cfg, rdb)

	if err := seedFirstAdmin(gormDB, cfg, serviceContainer.Auth); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB, rdb, serviceContainer)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      ginRouter,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

// SetupRouter builds the gin engine with every handler registered.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, rdb *redis.Client, serviceContainer *services.ServiceContainer) *gin.Engine {
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg, gormDB, serviceContainer.Auth)

	routes.RegisterRoutes(ginRouter, appHandlers, routes.HealthChecks{
		"database": func(ctx context.Context) error { return database.Ping(ctx, gormDB) },
		"redis":    func(ctx context.Context) error { return database.PingRedis(ctx, rdb) },
	})

	return ginRouter
}

func initializeServices(cfg *config.Config, rdb *redis.Client) *services.ServiceContainer {
	templates := email.NewTemplateManager()

	var emailService email.Provider
	if cfg.Email.Enabled() {
		emailService = email.NewSMTPProvider(email.ConfigFrom(cfg.Email), templates)
		if err := emailService.Validate(); err != nil {
			logger.Fatal("Invalid SMTP configuration", "error", err)
		}
	} else {
		logger.Warn("SMTP is not configured, outgoing mail is only logged")
		emailService = email.NewLogProvider(templates)
	}

	planRepo := repositories.NewPlanRepository()
	applicationRepo := repositories.NewApplicationRepository()
	contactRepo := repositories.NewContactRepository()
	userRepo := repositories.NewUserRepository()
	identityRepo := repositories.NewIdentityRepository()

	authProvider := auth.NewProvider(
		auth.NewPasswordIdentityProvider(identityRepo),
		userRepo,
		auth.NewRedisSessionStore(rdb),
		auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL()),
		cfg.Auth.FirstAdminEmail,
	)

	return &services.ServiceContainer{
		PlanService:        services.NewPlanService(planRepo),
		ApplicationService: services.NewApplicationService(applicationRepo, planRepo, cfg.Auth.StrictStatusTransitions),
		ContactService:     services.NewContactService(contactRepo, emailService, cfg.Email.AdminEmail),
		AdviceService:      services.NewAdviceService(advisor.NewClient(cfg.APIs.GenAI)),
		AdminService:       services.NewAdminService(planRepo, applicationRepo, contactRepo),
		Auth:               authProvider,
		EmailService:       emailService,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, services.Auth),
		ProfileHandler:     handlers.NewProfileHandler(baseHandler, services.Auth, services.ApplicationService),
		PlanHandler:        handlers.NewPlanHandler(baseHandler, services.PlanService, services.ApplicationService),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, services.ApplicationService),
		AdviceHandler:      handlers.NewAdviceHandler(baseHandler, services.AdviceService),
		ContactHandler:     handlers.NewContactHandler(baseHandler, services.ContactService),
		AdminHandler:       handlers.NewAdminHandler(baseHandler, services.AdminService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, sessions middleware.SessionResolver) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	router.Use(middleware.SessionMiddleware(sessions))
	return router
}

// seedFirstAdmin creates the configured bootstrap administrator when absent.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config, provider *auth.Provider) error {
	adminEmail := cfg.Auth.FirstAdminEmail
	adminPassword := cfg.Auth.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("auth.first_admin_email or auth.first_admin_password is not set. Skipping admin seeding.")
		return nil
	}
	if err := auth.ValidatePassword(adminPassword); err != nil {
		return err
	}

	created, err := provider.EnsureAdmin(db, adminEmail, adminPassword)
	if err != nil {
		return err
	}
	if created {
		logger.Info("Created first admin user", "email", adminEmail)
	} else {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
	}
	return nil
}
