package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/yigit/placementhub/docs" // Import generated swagger docs
	appControllers "github.com/yigit/placementhub/internal/app/controllers"
	appMigrations "github.com/yigit/placementhub/internal/app/migrations"
	appRepos "github.com/yigit/placementhub/internal/app/repositories"
	appRoutes "github.com/yigit/placementhub/internal/app/routes"
	appServices "github.com/yigit/placementhub/internal/app/services"
	"github.com/yigit/placementhub/internal/config"
	"github.com/yigit/placementhub/internal/db"
	appMiddleware "github.com/yigit/placementhub/internal/middleware"
	pkgAuth "github.com/yigit/placementhub/internal/pkg/auth"
	"github.com/yigit/placementhub/internal/pkg/email"
	"github.com/yigit/placementhub/internal/pkg/filestorage"
	"github.com/yigit/placementhub/internal/pkg/helpers"
	"github.com/yigit/placementhub/internal/pkg/logger"
	"github.com/yigit/placementhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            *appServices.AuthService
	StudentService         *appServices.StudentService
	DriveService           *appServices.DriveService
	CompanyService         *appServices.CompanyService
	ApplicationService     *appServices.ApplicationService
	NotificationService    *appServices.NotificationService
	DepartmentService      *appServices.DepartmentService
	StatsService           *appServices.StatsService
	AuthController         *appControllers.AuthController
	StudentController      *appControllers.StudentController
	HODController          *appControllers.HODController
	TPOController          *appControllers.TPOController
	NotificationController *appControllers.NotificationController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	EmailService           *email.Service
	Logger                 zerolog.Logger
	FileStorage            *filestorage.LocalStorage
	Redis                  *redis.Client
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
// seeds default data.
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
	migrator := appMigrations.NewMigrator(database.Pool, lgr)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	// Resume uploads are served under /uploads
	baseURL := "http://localhost:" + cfg.Server.Port
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.ResumeDir, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Redis, err = db.NewRedisClient(cfg)
	if err != nil {
		// The drive cache degrades to direct reads without Redis
		lgr.Warn().Err(err).Msg("Redis unavailable, continuing without drive cache")
		deps.Redis = nil
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromAddress,
	}, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.StudentRepository,
		deps.Repos.DepartmentRepository,
		deps.JWTService,
		lgr,
	)

	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.ApplicationRepository,
		deps.Repos.NotificationRepository,
		deps.FileStorage,
		lgr,
	)

	cacheTTL := helpers.ParseDuration(cfg.Redis.CacheTTL, 5*time.Minute)
	deps.DriveService = appServices.NewDriveService(
		deps.Repos.DriveRepository,
		deps.Repos.CompanyRepository,
		deps.Redis,
		cacheTTL,
	)

	deps.CompanyService = appServices.NewCompanyService(deps.Repos.CompanyRepository)
	deps.ApplicationService = appServices.NewApplicationService(
		deps.Repos.ApplicationRepository,
		deps.Repos.DriveRepository,
		deps.Repos.StudentRepository,
		deps.EmailService,
	)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos.NotificationRepository)
	deps.DepartmentService = appServices.NewDepartmentService(deps.Repos.DepartmentRepository)
	deps.StatsService = appServices.NewStatsService(deps.Repos.StatsRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.DepartmentService)
	deps.StudentController = appControllers.NewStudentController(
		deps.StudentService,
		deps.DriveService,
		deps.ApplicationService,
	)
	deps.HODController = appControllers.NewHODController(deps.StudentService)
	deps.TPOController = appControllers.NewTPOController(
		deps.CompanyService,
		deps.DriveService,
		deps.ApplicationService,
		deps.StatsService,
	)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Serve uploaded resumes
	router.Static("/uploads", cfg.Storage.ResumeDir)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.HODController,
		deps.TPOController,
		deps.NotificationController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
