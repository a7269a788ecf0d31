package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/dkuznetsov/awardhub/internal/app/controllers"
	appMigrations "github.com/dkuznetsov/awardhub/internal/app/migrations"
	appRepos "github.com/dkuznetsov/awardhub/internal/app/repositories"
	appRoutes "github.com/dkuznetsov/awardhub/internal/app/routes"
	appServices "github.com/dkuznetsov/awardhub/internal/app/services"
	"github.com/dkuznetsov/awardhub/internal/config"
	"github.com/dkuznetsov/awardhub/internal/db"
	appMiddleware "github.com/dkuznetsov/awardhub/internal/middleware"
	pkgAuth "github.com/dkuznetsov/awardhub/internal/pkg/auth"
	"github.com/dkuznetsov/awardhub/internal/pkg/email"
	"github.com/dkuznetsov/awardhub/internal/pkg/filestorage"
	"github.com/dkuznetsov/awardhub/internal/pkg/helpers"
	"github.com/dkuznetsov/awardhub/internal/pkg/logger"
	"github.com/dkuznetsov/awardhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	ProfileService    *appServices.ProfileService
	RosterService     *appServices.RosterService
	EventService      *appServices.EventService
	AwardService      *appServices.AwardService
	AuthController    *appControllers.AuthController
	ProfileController *appControllers.ProfileController
	StudentController *appControllers.StudentController
	TeacherController *appControllers.TeacherController
	EventController   *appControllers.EventController
	AwardController   *appControllers.AwardController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	EmailService      email.EmailService
	AvatarStorage     *filestorage.LocalStorage
	AwardStorage      *filestorage.LocalStorage
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds default reference data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.AvatarStorage, err = filestorage.NewLocalStorage(cfg.Storage.UploadsDir, "/Uploads", false)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize avatar storage")
		return nil, fmt.Errorf("failed to initialize avatar storage: %w", err)
	}
	deps.AwardStorage, err = filestorage.NewLocalStorage(cfg.Storage.AwardsDir, "/awards", true)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize award storage")
		return nil, fmt.Errorf("failed to initialize award storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		AccessSecret:    cfg.JWT.AccessSecret,
		RefreshSecret:   cfg.JWT.RefreshSecret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 360*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		FromEmail:  cfg.SMTP.FromEmail,
		AdminEmail: cfg.SMTP.AdminEmail,
	}, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	deps.ProfileService = appServices.NewProfileService(
		deps.Repos.UserRepository,
		deps.Repos.StudentRepository,
		deps.Repos.DepartmentRepository,
		deps.AvatarStorage,
		lgr,
	)
	deps.RosterService = appServices.NewRosterService(
		deps.Repos.UserRepository,
		deps.Repos.StudentRepository,
		deps.Repos.TeacherRepository,
		deps.Repos.DepartmentRepository,
		deps.EmailService,
		lgr,
	)
	deps.EventService = appServices.NewEventService(
		deps.Repos.EventRepository,
		deps.Repos.StudentRepository,
		deps.Repos.TeacherRepository,
		deps.Repos.LevelRepository,
		lgr,
	)
	deps.AwardService = appServices.NewAwardService(
		deps.Repos.AwardRepository,
		deps.Repos.StudentRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.LevelRepository,
		cfg.Awards.StrictDegreeCheck,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(
		deps.AuthService,
		deps.JWTService,
		cfg.IsProduction(),
		lgr,
	)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.RosterService, lgr)
	deps.TeacherController = appControllers.NewTeacherController(deps.RosterService, lgr)
	deps.EventController = appControllers.NewEventController(deps.EventService, lgr)
	deps.AwardController = appControllers.NewAwardController(
		deps.AwardService,
		deps.EventService,
		deps.AwardStorage,
		lgr,
	)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// The refresh cookie only travels cross-origin with credentials enabled
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProfileController,
		deps.StudentController,
		deps.TeacherController,
		deps.EventController,
		deps.AwardController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
