package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/estatecore/backend/internal/app/controllers"
	appMigrations "github.com/estatecore/backend/internal/app/migrations"
	appRepos "github.com/estatecore/backend/internal/app/repositories"
	appRoutes "github.com/estatecore/backend/internal/app/routes"
	appServices "github.com/estatecore/backend/internal/app/services"
	"github.com/estatecore/backend/internal/config"
	"github.com/estatecore/backend/internal/db"
	"github.com/estatecore/backend/internal/jobs"
	appMiddleware "github.com/estatecore/backend/internal/middleware"
	pkgAuth "github.com/estatecore/backend/internal/pkg/auth"
	"github.com/estatecore/backend/internal/pkg/cache"
	"github.com/estatecore/backend/internal/pkg/email"
	"github.com/estatecore/backend/internal/pkg/filestorage"
	"github.com/estatecore/backend/internal/pkg/logger"
	"github.com/estatecore/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                 *appRepos.Container
	JWTService            *pkgAuth.JWTService
	FileStorage           *filestorage.LocalStorage
	Dispatcher            *email.Dispatcher
	ListingCache          *cache.ListingCache
	Scheduler             *jobs.Scheduler
	AuthService           appServices.IAuthService
	AgentService          appServices.IAgentService
	PropertyService       appServices.IPropertyService
	AppointmentService    appServices.IAppointmentService
	UserController        *appControllers.UserController
	AgentController       *appControllers.AgentController
	PropertyController    *appControllers.PropertyController
	AppointmentController *appControllers.AppointmentController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the admin account
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database)
	if err := migrator.ApplyDirectory(ctx, migrationsDir); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations applied")

	userRepo := appRepos.NewUserRepository(dbPool)
	if err := seed.EnsureAdmin(ctx, userRepo, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed admin account, proceeding anyway")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewContainer(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		SessionExp:      config.ParseDuration(cfg.JWT.SessionExpiration, 24*time.Hour),
		VerificationExp: config.ParseDuration(cfg.JWT.VerificationExpiration, 24*time.Hour),
		ResetExp:        config.ParseDuration(cfg.JWT.ResetExpiration, time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	sender := email.NewSMTPSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)
	deps.Dispatcher = email.NewDispatcher(sender, 64, lgr)

	if cfg.Redis.Enabled {
		deps.ListingCache, err = cache.NewListingCache(
			cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			config.ParseDuration(cfg.Redis.CacheTTL, 5*time.Minute), lgr)
		if err != nil {
			// A missing cache only costs performance
			lgr.Warn().Err(err).Msg("Redis unavailable, continuing without listing cache")
			deps.ListingCache = nil
		}
	}

	deps.Scheduler, err = jobs.NewScheduler(deps.Repos.Users, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
	}

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.Users,
		deps.JWTService,
		deps.FileStorage,
		deps.Dispatcher,
		cfg.Server.BaseURL,
		cfg.Server.FrontendURL,
		lgr,
	)
	deps.AgentService = appServices.NewAgentService(deps.Repos.Agents, deps.FileStorage, lgr)
	deps.PropertyService = appServices.NewPropertyService(deps.Repos.Properties, deps.FileStorage, lgr)
	deps.AppointmentService = appServices.NewAppointmentService(
		deps.Repos.Appointments,
		deps.Repos.Properties,
		deps.Repos.Users,
		deps.Dispatcher,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.Users)

	deps.UserController = appControllers.NewUserController(deps.AuthService, cfg.Server.FrontendURL, lgr)
	deps.AgentController = appControllers.NewAgentController(deps.AgentService, lgr)
	deps.PropertyController = appControllers.NewPropertyController(deps.PropertyService, deps.ListingCache, lgr)
	deps.AppointmentController = appControllers.NewAppointmentController(deps.AppointmentService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.Metrics())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	appRoutes.SetupRouter(router,
		deps.UserController,
		deps.AgentController,
		deps.PropertyController,
		deps.AppointmentController,
		deps.AuthMiddleware,
		cfg.Server.StoragePath,
	)

	lgr.Info().Str("mode", cfg.Server.Mode).Msg("Router configured")
	return router
}
