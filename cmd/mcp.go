package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/teemow/taskmanager/internal/api"
	"github.com/teemow/taskmanager/internal/instrumentation"
	"github.com/teemow/taskmanager/internal/logging"
	"github.com/teemow/taskmanager/internal/resources"
	"github.com/teemow/taskmanager/internal/server"
	"github.com/teemow/taskmanager/internal/tasks"
	"github.com/teemow/taskmanager/internal/tools/tasks_tools"
)

const defaultAPIURL = "http://localhost:8000"

func newMCPCmd() *cobra.Command {
	cfg := mcpConfig{}
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server exposing the task tools",
		Long: `Start the Model Context Protocol (MCP) server. Each tool maps to one
task API operation:

  get_all_tasks, get_task, create_task, update_task, delete_task

By default the tools call a running task API (--api-url). With --local they are
served from an in-process store instead.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport on /mcp

Input schemas describe the tools to clients. Arguments are checked by a typed
parse before the call is made, so required arguments and argument types are
always enforced. --strict-args additionally validates arguments against the
input schema and reports every schema violation at once.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadMCPEnv(cmd, &cfg, &metricsAddr); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return runMCP(cfg, metricsAddr)
		},
	}

	cmd.Flags().StringVar(&cfg.Transport, "transport", transportStdio, "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&cfg.HTTPAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().StringVar(&cfg.APIURL, "api-url", defaultAPIURL, "Base URL of the task API. Can also use TASKMANAGER_API_URL env var.")
	cmd.Flags().DurationVar(&cfg.APITimeout, "api-timeout", api.DefaultTimeout, "Timeout for task API requests. Can also use TASKMANAGER_API_TIMEOUT env var.")
	cmd.Flags().BoolVar(&cfg.Local, "local", false, "Serve tools from an in-process store instead of the task API")
	cmd.Flags().BoolVar(&cfg.StrictArgs, "strict-args", false, "Also validate tool arguments against the input schema before calling the API")
	cmd.Flags().BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&cfg.LogFormat, "log-format", logging.FormatText, "Log format: text or json. Can also use LOG_FORMAT env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address (streamable-http transport only). Can also use METRICS_ADDR env var.")

	return cmd
}

// loadMCPEnv applies environment variables for flags that were not set explicitly.
func loadMCPEnv(cmd *cobra.Command, cfg *mcpConfig, metricsAddr *string) error {
	envString(cmd, "api-url", "TASKMANAGER_API_URL", &cfg.APIURL)
	envString(cmd, "log-format", "LOG_FORMAT", &cfg.LogFormat)
	envString(cmd, "metrics-addr", "METRICS_ADDR", metricsAddr)
	return envDuration(cmd, "api-timeout", "TASKMANAGER_API_TIMEOUT", &cfg.APITimeout)
}

// newTaskService returns the backend the tools call.
func newTaskService(cfg mcpConfig, metrics *instrumentation.Metrics, logger *slog.Logger) (api.TaskService, error) {
	if cfg.Local {
		return api.NewLocalClient(tasks.NewStore(), metrics), nil
	}
	client, err := api.NewClient(cfg.APIURL,
		api.WithTimeout(cfg.APITimeout),
		api.WithClientMetrics(metrics),
		api.WithClientLogger(logging.NewSlogAdapter(logger)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task API client: %w", err)
	}
	return client, nil
}

// newMCPServer creates the MCP server with every tool and resource registered.
func newMCPServer(sc *server.ServerContext, strictArgs bool, logger *slog.Logger) (*mcpserver.MCPServer, error) {
	mcpSrv := mcpserver.NewMCPServer("taskmanager", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false), // Subscribe and listChanged
	)

	if err := tasks_tools.RegisterTasksTools(mcpSrv, sc,
		tasks_tools.WithSchemaValidation(strictArgs),
		tasks_tools.WithAdapterLogger(logger),
	); err != nil {
		return nil, fmt.Errorf("failed to register task tools: %w", err)
	}
	if err := resources.RegisterTaskResources(mcpSrv, sc); err != nil {
		return nil, fmt.Errorf("failed to register task resources: %w", err)
	}
	return mcpSrv, nil
}

func runMCP(cfg mcpConfig, metricsAddr string) error {
	// Logs go to stderr, stdout belongs to the stdio transport
	logger := setupLogging(cfg.Debug, cfg.LogFormat)

	shutdownCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	provider, err := newInstrumentationProvider(shutdownCtx, mcpDeployment(cfg))
	if err != nil {
		return err
	}
	defer shutdownInstrumentation(provider, logger)

	var metrics *instrumentation.Metrics
	if provider.Enabled() {
		metrics = provider.Metrics()
	}

	svc, err := newTaskService(cfg, metrics, logger)
	if err != nil {
		return err
	}

	serverContext, err := newServerContext(shutdownCtx, svc, provider)
	if err != nil {
		return err
	}
	defer func() { _ = serverContext.Shutdown() }()

	mcpSrv, err := newMCPServer(serverContext, cfg.StrictArgs, logger)
	if err != nil {
		return err
	}

	backend := cfg.APIURL
	if cfg.Local {
		backend = "local"
	}

	switch cfg.Transport {
	case transportStdio:
		logger.Debug("starting MCP server", "transport", cfg.Transport, "backend", backend)
		return runStdioServer(mcpSrv)
	case transportStreamableHTTP:
		metricsServer, err := startMetricsServer(provider, metricsAddr, logger)
		if err != nil {
			return err
		}
		defer shutdownMetricsServer(metricsServer, logger)

		logger.Info("starting MCP server", "transport", cfg.Transport, "addr", cfg.HTTPAddr, "backend", backend)
		health := server.NewHealthChecker(serverContext)
		return runHTTPServer(shutdownCtx, server.NewMCPHTTPServer(mcpSrv, health), cfg.HTTPAddr, health, logger)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: %s, %s)", cfg.Transport, transportStdio, transportStreamableHTTP)
	}
}

func mcpDeployment(cfg mcpConfig) instrumentation.Deployment {
	if cfg.Local {
		return instrumentation.MCPDeployment(cfg.Transport, "")
	}
	return instrumentation.MCPDeployment(cfg.Transport, cfg.APIURL)
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	if err := mcpserver.ServeStdio(mcpSrv); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}
