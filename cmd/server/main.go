/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the award pay engine HTTP server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (defaults, config file, .env, AWARD_* env, flags)
  2. Build the logger and metrics registry
  3. Load the award catalog (embedded MA000012 or --award file)
  4. Open the history store (sqlite or memory)
  5. Start the history retention pruner
  6. Configure HTTP router and serve until interrupted

COMMAND-LINE FLAGS:
  -config   YAML config file
  -port     HTTP server port (overrides http.addr)
  -db       SQLite database path; ":memory:" for an in-memory database
  -award    Award document with one or more versions
  -schedule Default penalty schedule (current, legacy)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the pruner
  4. Close database connection

EXAMPLES:
  # Run with file database
  ./server -db="./data/award.db"

  # Run with in-memory history and the legacy schedule
  AWARD_DB_DRIVER=memory ./server -schedule=legacy

  # Run on different port
  ./server -port=3000

SEE ALSO:
  - config/config.go: Configuration keys
  - api/server.go: Router configuration
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/warp/award-engine/api"
	"github.com/warp/award-engine/config"
	"github.com/warp/award-engine/history"
	"github.com/warp/award-engine/observability"
	"github.com/warp/award-engine/pharmacy"
	"github.com/warp/award-engine/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Flags
	configPath := flag.String("config", "", "YAML config file")
	port := flag.Int("port", 0, "HTTP server port (overrides http.addr)")
	dbPath := flag.String("db", "", "SQLite database path (overrides db.path)")
	awardFile := flag.String("award", "", "Award document (overrides award.file)")
	schedule := flag.String("schedule", "", "Default penalty schedule (overrides award.schedule)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *port != 0 {
		cfg.HTTP.Addr = fmt.Sprintf(":%d", *port)
	}
	if *dbPath != "" {
		cfg.DB.Driver = config.DriverSQLite
		cfg.DB.Path = *dbPath
	}
	if *awardFile != "" {
		cfg.Award.File = *awardFile
	}
	if *schedule != "" {
		cfg.Award.Schedule = *schedule
	}

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	catalog, err := pharmacy.LoadCatalog(cfg.Award.File)
	if err != nil {
		return fmt.Errorf("failed to load award: %w", err)
	}
	latest, err := catalog.Latest(pharmacy.AwardCode)
	if err != nil {
		return err
	}
	if cfg.Award.Schedule != "" {
		if _, ok := latest.Schedules[cfg.Award.Schedule]; !ok {
			return fmt.Errorf("award %s has no schedule %q", latest.Code, cfg.Award.Schedule)
		}
	}
	logger.Info("award loaded",
		zap.String("code", latest.Code),
		zap.String("version", latest.Version),
		zap.Int("versions", len(catalog.Versions(latest.Code))),
		zap.Strings("schedules", latest.ScheduleNames()),
	)

	// Initialize store
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// Initialize handler
	handler := api.NewHandler(catalog, store, logger, metrics)
	handler.DefaultSchedule = cfg.Award.Schedule

	pruner := api.NewHistoryPruner(store, cfg.History.Retention, cfg.History.PruneInterval, logger, metrics)
	pruner.Start()
	defer pruner.Stop()

	router := api.NewRouter(handler, api.RouterOptions{
		CORSOrigins:   cfg.HTTP.CORSOrigins,
		ExposeMetrics: cfg.Metrics.Enabled,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.HTTP.Addr), zap.String("db", cfg.DB.Driver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal or a failed listener
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-quit:
		logger.Info("shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// openStore returns the configured history store and its closer.
func openStore(cfg config.Config) (history.Store, func(), error) {
	if cfg.DB.Driver == config.DriverMemory {
		return history.NewMemory(), func() {}, nil
	}
	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store, func() { store.Close() }, nil
}
