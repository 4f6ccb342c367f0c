package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/taskmanager/internal/api"
	"github.com/teemow/taskmanager/internal/instrumentation"
	"github.com/teemow/taskmanager/internal/logging"
	"github.com/teemow/taskmanager/internal/server"
	"github.com/teemow/taskmanager/internal/tasks"
)

const startupTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cfg := serveConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the task REST API",
		Long: `Start the task REST API backed by an in-memory store.

Endpoints:
  GET    /                  welcome message and endpoint map
  GET    /tasks             list tasks
  GET    /tasks/{task_id}   get a task
  POST   /tasks             create a task
  PUT    /tasks/{task_id}   update a task
  DELETE /tasks/{task_id}   delete a task

Health probes are served on /healthz, /readyz and /healthz/detailed.
Prometheus metrics are served on a dedicated port (--metrics-addr).

Tasks are kept in memory and lost on restart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadServeEnv(cmd, &cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.Host, "host", "0.0.0.0", "Interface to listen on. Can also use TASKMANAGER_HOST env var.")
	cmd.Flags().IntVar(&cfg.Port, "port", 8000, "Port to listen on. Can also use TASKMANAGER_PORT env var.")
	cmd.Flags().BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&cfg.LogFormat, "log-format", logging.FormatText, "Log format: text or json. Can also use LOG_FORMAT env var.")
	cmd.Flags().BoolVar(&cfg.MetricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

// loadServeEnv applies environment variables for flags that were not set explicitly.
func loadServeEnv(cmd *cobra.Command, cfg *serveConfig) error {
	envString(cmd, "host", "TASKMANAGER_HOST", &cfg.Host)
	envString(cmd, "log-format", "LOG_FORMAT", &cfg.LogFormat)
	envString(cmd, "metrics-addr", "METRICS_ADDR", &cfg.MetricsAddr)
	return errors.Join(
		envInt(cmd, "port", "TASKMANAGER_PORT", &cfg.Port),
		envBool(cmd, "metrics-enabled", "METRICS_ENABLED", &cfg.MetricsEnabled),
	)
}

func setupLogging(debug bool, format string) *slog.Logger {
	return logging.Setup(logging.Options{
		Level:  logging.LevelFromDebug(debug),
		Format: strings.ToLower(format),
	})
}

func runServe(cfg serveConfig) error {
	logger := setupLogging(cfg.Debug, cfg.LogFormat)

	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	provider, err := newInstrumentationProvider(shutdownCtx, instrumentation.LocalAPI())
	if err != nil {
		return err
	}
	defer shutdownInstrumentation(provider, logger)

	if cfg.MetricsEnabled {
		metricsServer, err := startMetricsServer(provider, cfg.MetricsAddr, logger)
		if err != nil {
			return err
		}
		defer shutdownMetricsServer(metricsServer, logger)
	}

	var metrics *instrumentation.Metrics
	if provider.Enabled() {
		metrics = provider.Metrics()
	}
	svc := api.NewLocalClient(tasks.NewStore(), metrics)

	serverContext, err := newServerContext(shutdownCtx, svc, provider)
	if err != nil {
		return err
	}
	defer func() { _ = serverContext.Shutdown() }()

	health := server.NewHealthChecker(serverContext)
	httpServer := server.NewAPIServer(serverContext, health,
		api.WithLogger(logger),
		api.WithTracing(provider.TracingEnabled()),
	)

	logger.Info("starting task API", "addr", cfg.Addr(), "version", version)
	return runHTTPServer(shutdownCtx, httpServer, cfg.Addr(), health, logger)
}

func newInstrumentationProvider(ctx context.Context, deployment instrumentation.Deployment) (*instrumentation.Provider, error) {
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	instrConfig.Deployment = deployment
	if err := instrConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid instrumentation configuration: %w", err)
	}

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	return provider, nil
}

func shutdownInstrumentation(provider *instrumentation.Provider, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
	defer cancel()
	if err := provider.Shutdown(ctx); err != nil {
		logger.Warn("instrumentation shutdown failed", logging.Err(err))
	}
}

// newServerContext wires metrics and audit logging from provider into a new
// server context.
func newServerContext(ctx context.Context, svc api.TaskService, provider *instrumentation.Provider) (*server.ServerContext, error) {
	sc, err := server.NewServerContext(ctx, svc)
	if err != nil {
		return nil, fmt.Errorf("failed to create server context: %w", err)
	}
	if provider.Enabled() {
		sc.SetMetrics(provider.Metrics())
		sc.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(nil, provider.Config().AuditLogging))
	}
	return sc, nil
}

// startMetricsServer starts the Prometheus endpoint. It returns nil when
// metrics are not exported through Prometheus.
func startMetricsServer(provider *instrumentation.Provider, addr string, logger *slog.Logger) (*server.MetricsServer, error) {
	if !provider.Enabled() || !provider.PrometheusEnabled() {
		logger.Info("metrics server disabled", "exporter", provider.Config().MetricsExporter)
		return nil, nil
	}

	metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
		Addr:                    addr,
		InstrumentationProvider: provider,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics server: %w", err)
	}

	// Use ready channel to confirm metrics server started successfully
	ready := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		errCh <- metricsServer.StartWithReadySignal(ready)
	}()

	select {
	case <-ready:
		logger.Info("metrics server started", "addr", metricsServer.Addr())
		return metricsServer, nil
	case err := <-errCh:
		return nil, fmt.Errorf("metrics server failed to start: %w", err)
	case <-time.After(startupTimeout):
		return nil, errors.New("metrics server startup timed out")
	}
}

func shutdownMetricsServer(metricsServer *server.MetricsServer, logger *slog.Logger) {
	if metricsServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
	defer cancel()
	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Warn("metrics server shutdown failed", logging.Err(err))
	}
}

// runHTTPServer serves until ctx is cancelled, then marks the server not
// ready and drains in-flight requests.
func runHTTPServer(ctx context.Context, httpServer *server.HTTPServer, addr string, health *server.HealthChecker, logger *slog.Logger) error {
	ready := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.StartWithReadySignal(addr, ready)
	}()

	select {
	case <-ready:
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", server.DefaultShutdownTimeout)
	health.SetReady(false)

	drainCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return <-errCh
}
