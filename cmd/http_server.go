package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/worklink/worklink-backend/internal"
	"github.com/worklink/worklink-backend/internal/admin"
	adminpg "github.com/worklink/worklink-backend/internal/admin/postgres"
	"github.com/worklink/worklink-backend/internal/application"
	applicationpg "github.com/worklink/worklink-backend/internal/application/postgres"
	"github.com/worklink/worklink-backend/internal/auth"
	"github.com/worklink/worklink-backend/internal/job"
	jobpg "github.com/worklink/worklink-backend/internal/job/postgres"
	"github.com/worklink/worklink-backend/internal/principal"
	principalpg "github.com/worklink/worklink-backend/internal/principal/postgres"
	"github.com/worklink/worklink-backend/internal/transport/rest"
	"github.com/worklink/worklink-backend/internal/worksession"
	worksessionpg "github.com/worklink/worklink-backend/internal/worksession/postgres"
	"github.com/worklink/worklink-backend/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	lg := deps.Logger

	tokens := auth.NewJWTTokenGenerator(
		deps.Config.Security.TokenSecret,
		deps.Config.Security.AccessTokenDuration,
		deps.Config.Security.RefreshTokenDuration,
	)

	principalRepo := principalpg.NewPrincipalRepository(deps.Gorm)
	jobRepo := jobpg.NewJobRepository(deps.Gorm)
	applicationRepo := applicationpg.NewApplicationRepository(deps.Gorm)
	sessionRepo := worksessionpg.NewWorkSessionRepository(deps.Gorm)
	adminRepo := adminpg.NewAdminRepository(deps.Gorm)

	authService := auth.NewService(principalRepo, tokens, lg)
	principalService := principal.NewService(principalRepo, lg)
	jobService := job.NewService(jobRepo, lg)
	applicationService := application.NewService(applicationRepo, jobRepo, lg)
	sessionService := worksession.NewService(sessionRepo, applicationRepo, jobRepo, lg)
	adminService := admin.NewService(adminRepo, lg)

	kinds := auth.NewKindAuthorization(tokens, principalRepo, lg)

	handlers := rest.Handlers{
		Auth:        auth.NewHandler(authService),
		Principal:   principal.NewHandler(principalService),
		Job:         job.NewHandler(jobService),
		Application: application.NewHandler(applicationService),
		WorkSession: worksession.NewHandler(sessionService),
		Admin:       admin.NewHandler(adminService),
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers, kinds, lg)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Env, config.Logging.Level)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		Gorm:   gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the pgx connection pool used for health checks and as the
// underlying connection for gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers gorm on top of the existing pool so both share one set of
// connections.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}
