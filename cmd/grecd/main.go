package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/BiiZti/5GRecommendationTool/internal/catalog"
	"github.com/BiiZti/5GRecommendationTool/internal/config"
	"github.com/BiiZti/5GRecommendationTool/internal/server"
	"github.com/BiiZti/5GRecommendationTool/internal/store"
	"github.com/BiiZti/5GRecommendationTool/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg.GetString("log.level"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("GRec server starting", zap.String("version", version.Short()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Assemble the plan catalog from configured sources
	manager, closeCatalog, err := buildCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to build catalog", zap.Error(err))
	}
	defer closeCatalog()

	plans, err := manager.Plans(ctx)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}
	logger.Info("catalog loaded", zap.Int("plans", len(plans)))

	// Create and start HTTP server
	srv, err := server.New(cfg, manager, logger)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	// Start server in background
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("GRec server ready", zap.String("addr", srv.Addr()))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.GetDuration("server.shutdown_timeout"))
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("GRec server stopped")
}

// newLogger builds a production logger honoring the configured level.
func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = lvl
	}
	return cfg.Build()
}

// buildCatalog registers every configured plan source on a fresh Manager:
// the bundled carrier catalogs, then catalog files, then the SQLite store.
// The returned func releases the store handle, if one was opened.
func buildCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*catalog.Manager, func(), error) {
	manager := catalog.NewManager(logger)

	if cfg.GetBool("catalog.builtin") {
		for _, p := range catalog.BuiltinProviders() {
			manager.Register(p)
		}
	}

	for _, path := range cfg.GetStringSlice("catalog.files") {
		manager.Register(catalog.NewFileProvider(path, ""))
	}

	closeFn := func() {}
	if path := cfg.GetString("catalog.sqlite_path"); path != "" {
		st, err := store.New(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open catalog store: %w", err)
		}
		provider, err := catalog.NewSQLiteProvider(ctx, st)
		if err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("init sqlite catalog: %w", err)
		}
		manager.Register(provider)
		closeFn = func() {
			if err := st.Close(); err != nil {
				logger.Error("failed to close catalog store", zap.Error(err))
			}
		}
	}

	return manager, closeFn, nil
}
