package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/bucodel/registration-backend/internal/app/auth"
	appControllers "github.com/bucodel/registration-backend/internal/app/controllers"
	appRepos "github.com/bucodel/registration-backend/internal/app/repositories"
	appRoutes "github.com/bucodel/registration-backend/internal/app/routes"
	appServices "github.com/bucodel/registration-backend/internal/app/services"
	"github.com/bucodel/registration-backend/internal/config"
	"github.com/bucodel/registration-backend/internal/db"
	appMiddleware "github.com/bucodel/registration-backend/internal/middleware"
	pkgAuth "github.com/bucodel/registration-backend/internal/pkg/auth"
	"github.com/bucodel/registration-backend/internal/pkg/filestorage"
	"github.com/bucodel/registration-backend/internal/pkg/helpers"
	"github.com/bucodel/registration-backend/internal/pkg/logger"
	"github.com/bucodel/registration-backend/internal/pkg/validation"
	"github.com/bucodel/registration-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos             *appRepos.Repositories
	FileStorage       *filestorage.LocalStorage
	JWTService        *pkgAuth.JWTService
	Authorizer        appAuth.Authorizer
	StudentService    *appServices.StudentService
	AdminService      *appServices.AdminService
	ExportService     *appServices.ExportService
	FileService       *appServices.FileService
	StudentController *appControllers.StudentController
	AdminController   *appControllers.AdminController
	ExportController  *appControllers.ExportController
	FileController    *appControllers.FileController
	AuthMiddleware    *appMiddleware.AuthMiddleware
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

// SetupDatabase establishes the database connection pool.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Database connection successfully established.")

	// Seed the bootstrap admin account when one is configured.
	if err := seed.CreateDefaultAdmin(context.Background(), database.Pool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default admin, proceeding anyway...")
	}

	return database.Pool, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware against the pool.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, "/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 24*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	// Every action is currently allowed; swap this for a real policy to
	// close the admin surface.
	deps.Authorizer = appAuth.NewPermissiveAuthorizer()

	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.FileStorage, deps.JWTService, lgr)
	deps.AdminService = appServices.NewAdminService(deps.Repos.AdminRepository, deps.JWTService, lgr)
	deps.ExportService = appServices.NewExportService(deps.Repos.StudentRepository, lgr)
	deps.FileService = appServices.NewFileService(deps.Repos.StudentRepository, deps.FileStorage, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Authorizer, lgr)

	deps.StudentController = appControllers.NewStudentController(deps.StudentService, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService, lgr)
	deps.ExportController = appControllers.NewExportController(deps.ExportService, lgr)
	deps.FileController = appControllers.NewFileController(deps.FileService, deps.FileStorage, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	if err := validation.RegisterCustomValidators(); err != nil {
		lgr.Error().Err(err).Msg("Failed to register custom validators")
	}

	router := gin.New()
	router.MaxMultipartMemory = 8 << 20
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS(cfg.CORS.AllowedOrigins))

	appRoutes.SetupRouter(router,
		deps.StudentController,
		deps.AdminController,
		deps.ExportController,
		deps.FileController,
		deps.AuthMiddleware,
		cfg.Server.StoragePath,
	)

	return router
}
