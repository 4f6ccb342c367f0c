package tasks_tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/teemow/taskmanager/internal/api"
	"github.com/teemow/taskmanager/internal/logging"
	"github.com/teemow/taskmanager/internal/tasks"
)

// Rendering prefixes.
const (
	createdPrefix = "Task created successfully:\n"
	updatedPrefix = "Task updated successfully:\n"
	errorPrefix   = "Error: "
)

// Content is the single text block a tool call produces.
type Content struct {
	Text    string
	IsError bool
}

type toolFunc func(ctx context.Context, args map[string]any) (string, error)

// Adapter turns tool calls into TaskService calls.
type Adapter struct {
	svc            api.TaskService
	validateSchema bool
	logger         *slog.Logger
	handlers       map[string]toolFunc
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithSchemaValidation toggles checking arguments against the tool's input
// schema before parsing. Disabled by default: the schema describes the tools
// to callers and the typed parse alone decides what is accepted.
func WithSchemaValidation(enabled bool) AdapterOption {
	return func(a *Adapter) {
		a.validateSchema = enabled
	}
}

// WithAdapterLogger sets the logger used for failed invocations.
func WithAdapterLogger(l *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAdapter returns an adapter dispatching to svc.
func NewAdapter(svc api.TaskService, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		svc:    svc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	byOperation := map[string]toolFunc{
		tasks.OperationList:   a.getAllTasks,
		tasks.OperationGet:    a.getTask,
		tasks.OperationCreate: a.createTask,
		tasks.OperationUpdate: a.updateTask,
		tasks.OperationDelete: a.deleteTask,
	}
	a.handlers = make(map[string]toolFunc, len(tasks.Operations))
	for _, op := range tasks.Operations {
		a.handlers[op.Tool] = byOperation[op.Name]
	}
	return a
}

// Invoke runs the named tool. It never returns an error or panics: every
// failure is rendered as text with IsError set.
func (a *Adapter) Invoke(ctx context.Context, name string, args map[string]any) (content Content) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("tool invocation panicked", logging.Tool(name), "panic", r)
			content = errorContent(fmt.Errorf("tool %s failed: %v", name, r))
		}
	}()

	fn, ok := a.handlers[name]
	if !ok {
		return Content{Text: errorPrefix + "Unknown tool: " + name, IsError: true}
	}
	if args == nil {
		args = map[string]any{}
	}

	if a.validateSchema {
		if err := validateArguments(name, args); err != nil {
			return errorContent(err)
		}
	}

	text, err := fn(ctx, args)
	if err != nil {
		a.logger.Debug("tool invocation failed", logging.Tool(name), logging.Err(err))
		return errorContent(err)
	}
	return Content{Text: text}
}

// errorContent renders err. API error responses keep their status and body.
func errorContent(err error) Content {
	var se *api.StatusError
	if errors.As(err, &se) {
		return Content{Text: fmt.Sprintf("%s%d - %s", errorPrefix, se.StatusCode, se.Body), IsError: true}
	}
	return Content{Text: errorPrefix + err.Error(), IsError: true}
}

// renderJSON indents with two spaces and leaves <, > and & unescaped.
func renderJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to render result: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (a *Adapter) getAllTasks(ctx context.Context, _ map[string]any) (string, error) {
	list, err := a.svc.ListTasks(ctx)
	if err != nil {
		return "", err
	}
	if list == nil {
		list = []tasks.Task{}
	}
	return renderJSON(list)
}

func (a *Adapter) getTask(ctx context.Context, args map[string]any) (string, error) {
	req, err := parseGetTask(args)
	if err != nil {
		return "", err
	}
	task, err := a.svc.GetTask(ctx, req.TaskID)
	if err != nil {
		return "", err
	}
	return renderJSON(task)
}

func (a *Adapter) createTask(ctx context.Context, args map[string]any) (string, error) {
	req, err := parseCreateTask(args)
	if err != nil {
		return "", err
	}
	task, err := a.svc.CreateTask(ctx, req.Task)
	if err != nil {
		return "", err
	}
	out, err := renderJSON(task)
	if err != nil {
		return "", err
	}
	return createdPrefix + out, nil
}

func (a *Adapter) updateTask(ctx context.Context, args map[string]any) (string, error) {
	req, err := parseUpdateTask(args)
	if err != nil {
		return "", err
	}
	task, err := a.svc.UpdateTask(ctx, req.TaskID, req.Update)
	if err != nil {
		return "", err
	}
	out, err := renderJSON(task)
	if err != nil {
		return "", err
	}
	return updatedPrefix + out, nil
}

func (a *Adapter) deleteTask(ctx context.Context, args map[string]any) (string, error) {
	req, err := parseDeleteTask(args)
	if err != nil {
		return "", err
	}
	deleted, err := a.svc.DeleteTask(ctx, req.TaskID)
	if err != nil {
		return "", err
	}
	return renderJSON(deleted)
}
