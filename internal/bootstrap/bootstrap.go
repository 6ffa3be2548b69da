package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	appAuth "github.com/lintangpradipa/catatankita/internal/app/auth"
	appControllers "github.com/lintangpradipa/catatankita/internal/app/controllers"
	appMigrations "github.com/lintangpradipa/catatankita/internal/app/migrations"
	appRepos "github.com/lintangpradipa/catatankita/internal/app/repositories"
	appRoutes "github.com/lintangpradipa/catatankita/internal/app/routes"
	appServices "github.com/lintangpradipa/catatankita/internal/app/services"
	"github.com/lintangpradipa/catatankita/internal/config"
	"github.com/lintangpradipa/catatankita/internal/db"
	appMiddleware "github.com/lintangpradipa/catatankita/internal/middleware"
	pkgAuth "github.com/lintangpradipa/catatankita/internal/pkg/auth"
	"github.com/lintangpradipa/catatankita/internal/pkg/helpers"
	"github.com/lintangpradipa/catatankita/internal/pkg/logger"
	"github.com/lintangpradipa/catatankita/internal/seed"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	NoteService        appServices.NoteService
	VaultService       appServices.VaultService
	PreferenceService  appServices.PreferenceService
	MaintenanceService appServices.MaintenanceService

	NoteController        *appControllers.NoteController
	VaultController       *appControllers.VaultController
	PreferenceController  *appControllers.PreferenceController
	MaintenanceController *appControllers.MaintenanceController

	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	VisibilityService *appAuth.VisibilityService
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations, and
// seeds the partnership pairing.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreatePartnership(context.Background(), database.Pool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed partnership, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool, cfg.Academic.DefaultYearStartMonth)

	deps.VisibilityService = appAuth.NewVisibilityService(deps.Repos.PartnershipRepository)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.NoteService = appServices.NewNoteService(
		database,
		deps.Repos,
		deps.VisibilityService,
		cfg.Vault.RevisionHistoryLimit,
	)
	deps.VaultService = appServices.NewVaultService(
		database,
		deps.Repos,
		deps.VisibilityService,
		cfg.TrashRetention(),
		cfg.Vault.InsightFetchCap,
	)
	deps.PreferenceService = appServices.NewPreferenceService(deps.Repos.PreferenceRepository)
	deps.MaintenanceService = appServices.NewMaintenanceService(deps.Repos.NoteRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.NoteController = appControllers.NewNoteController(deps.NoteService)
	deps.VaultController = appControllers.NewVaultController(deps.VaultService)
	deps.PreferenceController = appControllers.NewPreferenceController(deps.PreferenceService)
	deps.MaintenanceController = appControllers.NewMaintenanceController(deps.MaintenanceService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(lgr))

	appRoutes.SetupRouter(
		router,
		deps.NoteController,
		deps.VaultController,
		deps.PreferenceController,
		deps.MaintenanceController,
		deps.AuthMiddleware,
		cfg.Maintenance.Secret,
	)

	return router
}

// requestLogger logs each request with zerolog.
func requestLogger(lgr zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		lgr.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("clientIP", c.ClientIP()).
			Msg("Request handled")
	}
}
