package server

import (
	"context"
	"errors"
	"sync"

	"github.com/teemow/taskmanager/internal/api"
	"github.com/teemow/taskmanager/internal/instrumentation"
)

// ServerContext holds the dependencies shared by the REST API and the MCP server.
type ServerContext struct {
	ctx         context.Context
	cancel      context.CancelFunc
	taskService api.TaskService
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
	mu          sync.RWMutex
	shutdown    bool
}

// NewServerContext creates a new server context around svc.
func NewServerContext(ctx context.Context, svc api.TaskService) (*ServerContext, error) {
	if svc == nil {
		return nil, errors.New("task service is required")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:         shutdownCtx,
		cancel:      cancel,
		taskService: svc,
	}, nil
}

// Context returns the server context. It is cancelled on Shutdown.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// TaskService returns the backend tool calls and HTTP requests are served from.
func (sc *ServerContext) TaskService() api.TaskService {
	return sc.taskService
}

// TaskCount returns the number of stored tasks when the backend is an
// in-process store.
func (sc *ServerContext) TaskCount() (int, bool) {
	local, ok := sc.taskService.(*api.LocalClient)
	if !ok {
		return 0, false
	}
	return local.Store().Len(), true
}

// Metrics returns the metrics recorder, or nil if instrumentation is off.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// AuditLogger returns the audit logger, or nil if audit logging is off.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger sets the audit logger.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
