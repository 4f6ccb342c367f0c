package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/taskmanager/internal/api"
)

// MCPEndpointPath is where the streamable-http MCP transport is served.
const MCPEndpointPath = "/mcp"

const (
	httpReadHeaderTimeout = 10 * time.Second
	httpIdleTimeout       = 120 * time.Second
)

// HTTPServer wraps http.Server with a bound listener so callers can learn
// the actual address and wait for readiness.
type HTTPServer struct {
	handler http.Handler

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
}

// NewHTTPServer returns a server for handler.
func NewHTTPServer(handler http.Handler) *HTTPServer {
	return &HTTPServer{handler: handler}
}

// NewAPIServer serves the REST API and the health endpoints.
func NewAPIServer(sc *ServerContext, health *HealthChecker, opts ...api.Option) *HTTPServer {
	if sc.Metrics() != nil {
		opts = append([]api.Option{api.WithMetrics(sc.Metrics())}, opts...)
	}
	router := api.NewRouter(sc.TaskService(), opts...)
	health.RegisterHealthEndpoints(router)
	return NewHTTPServer(router)
}

// NewMCPHTTPServer serves an MCP server over streamable HTTP at /mcp, plus the
// health endpoints.
func NewMCPHTTPServer(s *mcpserver.MCPServer, health *HealthChecker) *HTTPServer {
	r := chi.NewRouter()
	r.Handle(MCPEndpointPath, mcpserver.NewStreamableHTTPServer(s,
		mcpserver.WithEndpointPath(MCPEndpointPath),
	))
	health.RegisterHealthEndpoints(r)
	return NewHTTPServer(r)
}

// Start serves on addr until Shutdown is called. It blocks.
func (s *HTTPServer) Start(addr string) error {
	return s.StartWithReadySignal(addr, nil)
}

// StartWithReadySignal is like Start but closes ready once the listener is bound.
func (s *HTTPServer) StartWithReadySignal(addr string, ready chan<- struct{}) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: httpReadHeaderTimeout,
		IdleTimeout:       httpIdleTimeout,
	}

	s.mu.Lock()
	s.httpServer = srv
	s.listener = ln
	s.mu.Unlock()

	slog.Info("http server listening", "addr", ln.Addr().String())
	if ready != nil {
		close(ready)
	}

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully drains in-flight requests.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Addr returns the bound address, or "" before Start.
func (s *HTTPServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler returns the root handler.
func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}
