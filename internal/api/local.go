package api

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/teemow/taskmanager/internal/instrumentation"
	"github.com/teemow/taskmanager/internal/tasks"
)

// LocalClient serves task operations from an in-process store.
// Not-found and validation errors are returned as *StatusError.
type LocalClient struct {
	store   *tasks.Store
	metrics *instrumentation.Metrics
}

// NewLocalClient wraps store. metrics may be nil.
func NewLocalClient(store *tasks.Store, metrics *instrumentation.Metrics) *LocalClient {
	return &LocalClient{store: store, metrics: metrics}
}

// Store returns the wrapped store.
func (c *LocalClient) Store() *tasks.Store {
	return c.store
}

// observe runs fn inside a store span and records its outcome.
func (c *LocalClient) observe(ctx context.Context, operation string, fn func() error, attrs ...attribute.KeyValue) error {
	ctx, span := instrumentation.StartStoreSpan(ctx, operation, attrs...)
	defer span.End()

	start := time.Now()
	err := fn()

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
		instrumentation.SetSpanError(span, err)
	} else {
		instrumentation.SetSpanSuccess(span)
	}
	c.metrics.RecordStoreOperation(ctx, operation, status, time.Since(start))

	return ToStatusError(err)
}

func (c *LocalClient) ListTasks(ctx context.Context) ([]tasks.Task, error) {
	var list []tasks.Task
	err := c.observe(ctx, tasks.OperationList, func() error {
		list = c.store.List()
		return nil
	})
	return list, err
}

func (c *LocalClient) GetTask(ctx context.Context, id int) (*tasks.Task, error) {
	var task *tasks.Task
	err := c.observe(ctx, tasks.OperationGet, func() (err error) {
		task, err = c.store.Get(id)
		return err
	}, instrumentation.TaskIDAttr(id))
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (c *LocalClient) CreateTask(ctx context.Context, in tasks.NewTask) (*tasks.Task, error) {
	var task *tasks.Task
	err := c.observe(ctx, tasks.OperationCreate, func() (err error) {
		task, err = c.store.Create(in)
		return err
	})
	if err != nil {
		return nil, err
	}
	c.metrics.TaskCreated(ctx)
	trace.SpanFromContext(ctx).SetAttributes(instrumentation.TaskIDAttr(task.ID))
	return task, nil
}

func (c *LocalClient) UpdateTask(ctx context.Context, id int, u tasks.TaskUpdate) (*tasks.Task, error) {
	var task *tasks.Task
	err := c.observe(ctx, tasks.OperationUpdate, func() (err error) {
		task, err = c.store.Update(id, u)
		return err
	}, instrumentation.TaskIDAttr(id))
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (c *LocalClient) DeleteTask(ctx context.Context, id int) (*tasks.Deleted, error) {
	var task *tasks.Task
	err := c.observe(ctx, tasks.OperationDelete, func() (err error) {
		task, err = c.store.Delete(id)
		return err
	}, instrumentation.TaskIDAttr(id))
	if err != nil {
		return nil, err
	}
	c.metrics.TaskDeleted(ctx)
	return tasks.NewDeleted(*task), nil
}
