package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teemow/taskmanager/internal/instrumentation"
	"github.com/teemow/taskmanager/internal/tasks"
)

// WelcomeMessage is returned by GET /.
const WelcomeMessage = "Welcome to Task Manager API"

// Welcome is the body of GET /.
type Welcome struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

// Option configures the router.
type Option func(*handler)

// WithMetrics records HTTP request metrics.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(h *handler) {
		h.metrics = m
	}
}

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(h *handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithTracing enables otelhttp server spans.
func WithTracing(enabled bool) Option {
	return func(h *handler) {
		h.tracing = enabled
	}
}

type handler struct {
	svc     TaskService
	metrics *instrumentation.Metrics
	logger  *slog.Logger
	tracing bool
}

// NewRouter returns the REST router for svc. Further routes, such as health
// endpoints, may be added to the returned router.
func NewRouter(svc TaskService, opts ...Option) *chi.Mux {
	h := &handler{
		svc:    svc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	if h.tracing {
		r.Use(tracing)
	}
	r.Use(observe(h.logger, h.metrics))
	r.Use(recoverer(h.logger))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, detailNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, detailMethodNotAllowed)
	})

	r.Get("/", h.root)

	handlers := map[string]http.HandlerFunc{
		tasks.OperationList:   h.listTasks,
		tasks.OperationGet:    h.getTask,
		tasks.OperationCreate: h.createTask,
		tasks.OperationUpdate: h.updateTask,
		tasks.OperationDelete: h.deleteTask,
	}
	for _, op := range tasks.Operations {
		r.Method(op.Method, op.Route, handlers[op.Name])
	}

	return r
}

// Endpoints returns the "METHOD /route" to summary map listed by GET /.
func Endpoints() map[string]string {
	endpoints := make(map[string]string, len(tasks.Operations))
	for _, op := range tasks.Operations {
		endpoints[op.Endpoint()] = op.Summary
	}
	return endpoints
}

func (h *handler) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Welcome{
		Message:   WelcomeMessage,
		Endpoints: Endpoints(),
	})
}

func (h *handler) listTasks(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListTasks(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []tasks.Task{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) getTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}
	task, err := h.svc.GetTask(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *handler) createTask(w http.ResponseWriter, r *http.Request) {
	in, details := decodeNewTask(r)
	if len(details) > 0 {
		writeDetail(w, http.StatusUnprocessableEntity, details)
		return
	}
	task, err := h.svc.CreateTask(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}
	u, details := decodeTaskUpdate(r)
	if len(details) > 0 {
		writeDetail(w, http.StatusUnprocessableEntity, details)
		return
	}
	task, err := h.svc.UpdateTask(r.Context(), id, u)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}
	deleted, err := h.svc.DeleteTask(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}
