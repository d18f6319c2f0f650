package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/internal/logger"
	"github.com/permdeck/permdeck/internal/telemetry"
	"github.com/permdeck/permdeck/pkg/acl"
	"github.com/permdeck/permdeck/pkg/api"
	"github.com/permdeck/permdeck/pkg/api/auth"
	"github.com/permdeck/permdeck/pkg/config"
	"github.com/permdeck/permdeck/pkg/domain"
	"github.com/permdeck/permdeck/pkg/metrics"
	badgerstore "github.com/permdeck/permdeck/pkg/store/domain/badger"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the PermDeck server",
	Long: `Start the PermDeck server with the specified configuration.

The server loads the domain seed file, starts the management API, and
optionally watches the seed file for live reload.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/permdeck/config.yaml.

Examples:
  # Start with default config location
  permdeck start

  # Start with custom config file
  permdeck start --config /etc/permdeck/config.yaml

  # Start with environment variable overrides
  PERMDECK_LOGGING_LEVEL=DEBUG permdeck start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	// Initialize the structured logger
	if err := InitLogger(cfg); err != nil {
		return err
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry (if enabled)
	telemetryCfg := telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "permdeck",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	}
	telemetryShutdown, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	fmt.Println("PermDeck - Permission evaluation server")
	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))
	if telemetry.IsEnabled() {
		logger.Info("Telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	} else {
		logger.Info("Telemetry disabled")
	}

	// Initialize metrics before the domain so engine collectors exist
	// when the first domain is built
	var (
		metricsServer *metrics.Server
		httpMetrics   *metrics.HTTPMetrics
		domainOpts    []domain.Option
	)
	if cfg.Metrics.Enabled {
		registry := metrics.NewRegistry()
		httpMetrics = metrics.NewHTTPMetrics(registry)
		domainOpts = append(domainOpts, domain.WithMetrics(acl.NewMetrics(registry)))
		metricsServer = metrics.NewServer(cfg.Metrics.Port, registry)
		logger.Info("Metrics enabled", "port", cfg.Metrics.Port)
	} else {
		logger.Info("Metrics collection disabled")
	}

	// Load the domain from the seed file
	manager := domain.NewManager(cfg.Domain.SeedPath, domainOpts...)
	if err := manager.Load(); err != nil {
		return fmt.Errorf("failed to load domain seed: %w", err)
	}
	d := manager.Current()
	users, _ := d.Directory().ListUsers()
	groups, _ := d.Directory().ListGroups()
	logger.Info("Domain loaded",
		"domain", d.Name(),
		"users", len(users),
		"groups", len(groups),
		"files", len(d.Tree().List()))

	// Open the snapshot store
	var store *badgerstore.Store
	if cfg.Store.InMemory || cfg.Store.Path == "" {
		store, err = badgerstore.NewInMemory()
		logger.Info("Snapshot store opened", "backend", "in-memory")
	} else {
		store, err = badgerstore.New(cfg.Store.Path)
		logger.Info("Snapshot store opened", "backend", "badger", "path", cfg.Store.Path)
	}
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Snapshot store close error", "error", err)
		}
	}()

	// Configure API authentication
	deps := api.RouterDeps{
		Domains:        manager,
		Store:          store,
		RequestTimeout: cfg.API.RequestTimeout,
		HTTPMetrics:    httpMetrics,
	}
	if cfg.Auth.Enabled {
		deps.JWT = auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		deps.AdminUsername = cfg.Admin.Username
		deps.AdminPasswordHash = cfg.Admin.PasswordHash
		logger.Info("API authentication enabled", "admin", cfg.Admin.Username)
	} else {
		logger.Warn("API authentication disabled")
	}

	apiServer := api.NewServer(cfg.API, deps)
	logger.Info("API server configured", "host", cfg.API.Host, "port", cfg.API.Port)

	// Watch the seed file for live reload
	if cfg.Domain.Watch {
		go func() {
			if err := manager.Watch(ctx); err != nil {
				logger.Error("Seed watcher stopped", "error", err)
			}
		}()
		logger.Info("Seed watcher enabled", "path", cfg.Domain.SeedPath)
	}

	// Start servers in background
	serverDone := make(chan error, 2)
	go func() {
		serverDone <- apiServer.Start(ctx)
	}()
	if metricsServer != nil {
		go func() {
			serverDone <- metricsServer.Start(ctx)
		}()
	}

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")
		cancel()

		// Wait for the API server to shut down gracefully
		if err := <-serverDone; err != nil {
			logger.Error("Server shutdown error", "error", err)
			return err
		}
		logger.Info("Server stopped gracefully")

	case err := <-serverDone:
		signal.Stop(sigChan)
		cancel()
		if err != nil {
			logger.Error("Server error", "error", err)
			return err
		}
		logger.Info("Server stopped")
	}

	return nil
}
