package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations

	"github.com/projecthub-io/projecthub/pkg/auth"
	"github.com/projecthub-io/projecthub/pkg/config"
	"github.com/projecthub-io/projecthub/pkg/database"
	"github.com/projecthub-io/projecthub/pkg/handlers"
	"github.com/projecthub-io/projecthub/pkg/logging"
	"github.com/projecthub-io/projecthub/pkg/middleware"
	"github.com/projecthub-io/projecthub/pkg/repositories"
	"github.com/projecthub-io/projecthub/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("bind_addr", cfg.BindAddr),
		zap.String("port", cfg.Port),
		zap.Int("access_token_expire_minutes", cfg.Auth.AccessTokenExpireMinutes))

	ctx := context.Background()

	// Apply schema migrations before opening the pool.
	migrationDB, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to open database for migrations", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := migrationDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.URL,
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := repositories.NewUserRepository()
	projectRepo := repositories.NewProjectRepository()

	// Auth core: hasher, token service, permission table, guard.
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenService([]byte(cfg.Auth.SecretKey), cfg.Auth.AccessTokenTTL())
	perms := auth.NewPermissionTable()
	guard := auth.NewMiddleware(tokens, userRepo, perms, logger)

	// Services
	accountService := services.NewAccountService(userRepo, hasher, tokens, logger)
	projectService := services.NewProjectService(projectRepo, perms)
	userService := services.NewUserService(userRepo)

	scope := handlers.ScopeMiddleware(database.WithRequestScope(db, logger))

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(cfg, db, logger)
	healthHandler.RegisterRoutes(mux)

	authHandler := handlers.NewAuthHandler(accountService, logger)
	authHandler.RegisterRoutes(mux, scope)

	projectsHandler := handlers.NewProjectsHandler(projectService, logger)
	projectsHandler.RegisterRoutes(mux, scope, guard)

	usersHandler := handlers.NewUsersHandler(userService, logger)
	usersHandler.RegisterRoutes(mux, scope, guard)

	handler := middleware.RequestLogger(logger)(mux)

	addr := net.JoinHostPort(cfg.BindAddr, cfg.Port)
	logger.Info("Starting projecthub",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
