// Package instrumentation provides OpenTelemetry instrumentation for the
// taskmanager REST API and MCP server.
//
// This package enables observability through:
//   - OpenTelemetry metrics for HTTP requests, task store operations and MCP tools
//   - Distributed tracing for request flows and tool invocations
//   - Prometheus metrics export via /metrics endpoint on dedicated port
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// Task Store Metrics:
//   - task_store_operations_total: Counter of store operations by operation and status
//   - task_store_operation_duration_seconds: Histogram of store operation durations
//   - tasks_current: Number of tasks currently held in the store
//
// Task API Client Metrics:
//   - task_api_client_requests_total: Counter of requests sent to a remote task API
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//
// # Tracing
//
// Distributed tracing spans are created for:
//   - HTTP request handling (otelhttp)
//   - MCP tool invocations (tool.<name>)
//   - Task store operations (tasks.<operation>)
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: taskmanager)
//
// The command that starts the process sets Config.Deployment. Its component,
// backend, MCP transport and API host become resource attributes, so they
// appear on every span and on the Prometheus target_info series. Each
// Provider keeps its own Prometheus registry, served by MetricsHandler.
//
// # Example Usage
//
//	config := instrumentation.DefaultConfig()
//	config.Deployment = instrumentation.MCPDeployment("stdio", "http://localhost:8000")
//	provider, err := instrumentation.NewProvider(ctx, config)
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordHTTPRequest(ctx, "POST", "/tasks", 200, time.Since(start))
//	recorder.RecordStoreOperation(ctx, "create", "success", time.Since(start))
//	recorder.RecordToolInvocation(ctx, "create_task", "success", time.Since(start))
package instrumentation
