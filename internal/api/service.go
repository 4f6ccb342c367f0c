package api

import (
	"context"
	"fmt"

	"github.com/teemow/taskmanager/internal/tasks"
)

// TaskService is the set of task operations shared by the REST handler and
// the MCP tool adapter.
type TaskService interface {
	ListTasks(ctx context.Context) ([]tasks.Task, error)
	GetTask(ctx context.Context, id int) (*tasks.Task, error)
	CreateTask(ctx context.Context, in tasks.NewTask) (*tasks.Task, error)
	UpdateTask(ctx context.Context, id int, u tasks.TaskUpdate) (*tasks.Task, error)
	DeleteTask(ctx context.Context, id int) (*tasks.Deleted, error)
}

// StatusError is an error response from the task API.
// Body holds the raw response body with surrounding whitespace trimmed.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d - %s", e.StatusCode, e.Body)
}
