package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/teemow/taskmanager/internal/instrumentation"
	"github.com/teemow/taskmanager/internal/tasks"
)

// failingService returns err (or panics) from every operation.
type failingService struct {
	err   error
	panic bool
}

func (f failingService) fail() error {
	if f.panic {
		panic("boom")
	}
	return f.err
}

func (f failingService) ListTasks(context.Context) ([]tasks.Task, error) { return nil, f.fail() }
func (f failingService) GetTask(context.Context, int) (*tasks.Task, error) {
	return nil, f.fail()
}
func (f failingService) CreateTask(context.Context, tasks.NewTask) (*tasks.Task, error) {
	return nil, f.fail()
}
func (f failingService) UpdateTask(context.Context, int, tasks.TaskUpdate) (*tasks.Task, error) {
	return nil, f.fail()
}
func (f failingService) DeleteTask(context.Context, int) (*tasks.Deleted, error) {
	return nil, f.fail()
}

func TestLocalClient_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewLocalClient(tasks.NewStore(), nil)

	created, err := c.CreateTask(ctx, tasks.NewTask{Title: tasks.String("A"), Description: tasks.String("x")})
	require.NoError(t, err)
	assert.Equal(t, tasks.Task{ID: 1, Title: "A", Description: "x"}, *created)

	got, err := c.GetTask(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	updated, err := c.UpdateTask(ctx, 1, tasks.TaskUpdate{Completed: tasks.Bool(true)})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	list, err := c.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	deleted, err := c.DeleteTask(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, tasks.DeletedMessage, deleted.Message)
	assert.Equal(t, 1, deleted.Task.ID)
	assert.Zero(t, c.Store().Len())
}

func TestLocalClient_ErrorsAsStatus(t *testing.T) {
	ctx := context.Background()
	c := NewLocalClient(tasks.NewStore(), nil)

	_, err := c.GetTask(ctx, 999)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, `{"detail":"Task not found"}`, se.Body)
	assert.Equal(t, `Error: 404 - {"detail":"Task not found"}`, "Error: "+err.Error())

	_, err = c.CreateTask(ctx, tasks.NewTask{Description: tasks.String("x")})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnprocessableEntity, se.StatusCode)
	assert.JSONEq(t, `{"detail":[{"loc":["body","title"],"msg":"Field required","type":"missing"}]}`, se.Body)

	_, err = c.DeleteTask(ctx, 5)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}

func TestLocalClient_WithMetrics(t *testing.T) {
	m, err := instrumentation.NewMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	c := NewLocalClient(tasks.NewStore(), m)

	_, err = c.CreateTask(ctx, tasks.NewTask{Title: tasks.String("A"), Description: tasks.String("x")})
	require.NoError(t, err)
	_, err = c.GetTask(ctx, 2)
	assert.Error(t, err)
}

func TestToStatusError(t *testing.T) {
	assert.NoError(t, ToStatusError(nil))

	plain := errors.New("connection refused")
	assert.Same(t, plain, ToStatusError(plain))

	existing := &StatusError{StatusCode: 500, Body: "oops"}
	assert.Same(t, existing, ToStatusError(existing))

	var se *StatusError
	require.ErrorAs(t, ToStatusError(&tasks.NotFoundError{ID: 3}), &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}

func TestStatusError_Error(t *testing.T) {
	err := &StatusError{StatusCode: 404, Body: `{"detail":"Task not found"}`}
	assert.Equal(t, `404 - {"detail":"Task not found"}`, err.Error())
}
