package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spendwise/internal"
	"spendwise/internal/category"
	"spendwise/internal/connectivity"
	"spendwise/internal/core/events"
	"spendwise/internal/expense"
	"spendwise/internal/insight"
	"spendwise/internal/reports"
	"spendwise/internal/settings"
	"spendwise/internal/storage"
	"spendwise/internal/transport/rest"
	"spendwise/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	sqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server the presentation layer talks to`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Logger   *slog.Logger
	Monitor  *connectivity.Monitor
	Expenses *expense.Service
	Settings *settings.Service
	Insights *insight.Service
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	deps.Monitor.Start(context.Background())

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		deps.Monitor.Stop()
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.Monitor,
		expense.NewHandler(deps.Expenses),
		reports.NewHandler(deps.Expenses, deps.Settings),
		settings.NewHandler(deps.Settings),
		category.NewHandler(),
		insight.NewHandler(deps.Insights),
		deps.Logger,
	)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Format, config.Logging.Level)
	lg := logger.LoggerWrapper()

	db, gormDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	blobs := storage.NewBlobStore(gormDB)
	bus := events.NewEventBus(lg)

	expenseStore := expense.NewService(bus, lg)
	settingsStore := settings.NewService(bus, lg)

	// Seed session state from the persisted blobs; malformed or missing
	// blobs leave the defaults in place.
	restoreBlob(blobs, storage.BlobKeyExpenses, expenseStore.Restore, lg)
	restoreBlob(blobs, storage.BlobKeySettings, settingsStore.Restore, lg)

	expense.NewPersister(blobs, expenseStore, lg).Register(bus)
	settings.NewPersister(blobs, settingsStore, lg).Register(bus)

	insightClient := insight.NewClient(config.AI, lg)
	insightService := insight.NewService(insightClient, expenseStore, settingsStore, config.AI.Timeout, lg)

	monitor := connectivity.NewMonitor(config.Connectivity, lg)

	return &Dependencies{
		Config:   config,
		DB:       db,
		Router:   chi.NewRouter(),
		Logger:   lg,
		Monitor:  monitor,
		Expenses: expenseStore,
		Settings: settingsStore,
		Insights: insightService,
	}, nil
}

func restoreBlob(blobs *storage.BlobStore, key string, restore func([]byte), lg *slog.Logger) {
	raw, err := blobs.Get(key)
	if err != nil {
		if !errors.Is(err, storage.ErrBlobNotFound) {
			lg.Error("failed to read blob", "key", key, "error", err)
		}
		return
	}
	restore(raw)
}

// initDB opens the local SQLite file and wraps the same connection with GORM.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	const driver = "sqlite3"

	dbConn, err := sqlx.Connect(driver, cfg.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(sqlite.Dialector{Conn: dbConn.DB}, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to open gorm over sqlite: %w", err)
	}

	return dbConn, gormDB, nil
}
