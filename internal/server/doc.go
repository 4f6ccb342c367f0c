// Package server provides the shared server context and the HTTP servers
// of taskmanager.
//
// # Key Components
//
// ServerContext owns the TaskService every request and tool call is served
// from, together with the optional metrics recorder and audit logger.
//
// HTTPServer runs either the REST API (NewAPIServer) or the streamable-http
// MCP transport (NewMCPHTTPServer). Both also expose the HealthChecker
// endpoints:
//   - /healthz: liveness
//   - /readyz: readiness, 503 while shutting down
//   - /healthz/detailed: uptime, backend kind and task count
//
// MetricsServer exposes Prometheus metrics on a dedicated port.
package server
