package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

const (
	healthStatusOK           = "ok"
	healthStatusNotReady     = "not ready"
	healthStatusShuttingDown = "shutting down"
)

// Backend names reported by the detailed health endpoint.
const (
	backendLocal  = "local"
	backendRemote = "remote"
)

// HealthChecker serves liveness, readiness and detailed health probes for
// both the REST API and the MCP streamable-http transport.
type HealthChecker struct {
	ready   atomic.Bool
	sc      *ServerContext
	started time.Time
}

// NewHealthChecker returns a checker that starts out ready. sc may be nil.
func NewHealthChecker(sc *ServerContext) *HealthChecker {
	h := &HealthChecker{sc: sc, started: time.Now()}
	h.ready.Store(true)
	return h
}

// SetReady flips the readiness probe, typically to false once shutdown begins.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports the current readiness flag.
func (h *HealthChecker) IsReady() bool {
	return h.ready.Load()
}

func (h *HealthChecker) shuttingDown() bool {
	return h.sc != nil && h.sc.IsShutdown()
}

// HealthResponse is the body of /healthz and /readyz.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// DetailedHealthResponse is the body of /healthz/detailed. Tasks is only
// reported when the backend is an in-process store.
type DetailedHealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Backend string `json:"backend,omitempty"`
	Tasks   *int   `json:"tasks,omitempty"`
}

func writeHealth(w http.ResponseWriter, healthy bool, body any) {
	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(body)
}

// LivenessHandler serves /healthz. It always succeeds while the process runs.
func (h *HealthChecker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeHealth(w, true, HealthResponse{Status: healthStatusOK})
	})
}

// ReadinessHandler serves /readyz.
func (h *HealthChecker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := HealthResponse{
			Status: healthStatusOK,
			Checks: map[string]string{"ready": healthStatusOK, "shutdown": healthStatusOK},
		}
		if !h.IsReady() {
			resp.Checks["ready"] = healthStatusNotReady
			resp.Status = healthStatusNotReady
		}
		if h.shuttingDown() {
			resp.Checks["shutdown"] = healthStatusShuttingDown
			resp.Status = healthStatusNotReady
		}
		writeHealth(w, resp.Status == healthStatusOK, resp)
	})
}

// DetailedHealthHandler serves /healthz/detailed with uptime and backend info.
func (h *HealthChecker) DetailedHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := DetailedHealthResponse{
			Status: healthStatusOK,
			Uptime: time.Since(h.started).Truncate(time.Second).String(),
		}
		if h.sc != nil {
			resp.Backend = backendRemote
			if n, ok := h.sc.TaskCount(); ok {
				resp.Backend = backendLocal
				resp.Tasks = &n
			}
		}

		switch {
		case !h.IsReady():
			resp.Status = healthStatusNotReady
		case h.shuttingDown():
			resp.Status = healthStatusShuttingDown
		}
		writeHealth(w, resp.Status == healthStatusOK, resp)
	})
}

// Registrar is implemented by *http.ServeMux and *chi.Mux.
type Registrar interface {
	Handle(pattern string, handler http.Handler)
}

// RegisterHealthEndpoints mounts the three probes on mux.
func (h *HealthChecker) RegisterHealthEndpoints(mux Registrar) {
	mux.Handle("/healthz", h.LivenessHandler())
	mux.Handle("/readyz", h.ReadinessHandler())
	mux.Handle("/healthz/detailed", h.DetailedHealthHandler())
}
