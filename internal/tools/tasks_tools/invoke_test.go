package tasks_tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/taskmanager/internal/api"
	"github.com/teemow/taskmanager/internal/tasks"
)

func newTestAdapter(t *testing.T, opts ...AdapterOption) *Adapter {
	t.Helper()
	return NewAdapter(api.NewLocalClient(tasks.NewStore(), nil), opts...)
}

func TestAdapter_CreateAndGet(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	c := a.Invoke(ctx, "create_task", map[string]any{"title": "A", "description": "B"})
	require.False(t, c.IsError, c.Text)
	assert.Equal(t, "Task created successfully:\n{\n  \"id\": 1,\n  \"title\": \"A\",\n  \"description\": \"B\",\n  \"completed\": false\n}", c.Text)

	c = a.Invoke(ctx, "get_task", map[string]any{"task_id": float64(1)})
	require.False(t, c.IsError, c.Text)
	var task tasks.Task
	require.NoError(t, json.Unmarshal([]byte(c.Text), &task))
	assert.Equal(t, tasks.Task{ID: 1, Title: "A", Description: "B"}, task)
}

func TestAdapter_GetAllTasks(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	c := a.Invoke(ctx, "get_all_tasks", nil)
	require.False(t, c.IsError)
	assert.Equal(t, "[]", c.Text)

	a.Invoke(ctx, "create_task", map[string]any{"title": "A", "description": "<b>&</b>"})
	a.Invoke(ctx, "create_task", map[string]any{"title": "B", "description": "y", "completed": true})

	c = a.Invoke(ctx, "get_all_tasks", map[string]any{})
	require.False(t, c.IsError)
	assert.Contains(t, c.Text, "<b>&</b>")

	var list []tasks.Task
	require.NoError(t, json.Unmarshal([]byte(c.Text), &list))
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].ID)
	assert.True(t, list[1].Completed)
}

func TestAdapter_UpdateIsPresenceBased(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()
	a.Invoke(ctx, "create_task", map[string]any{"title": "A", "description": "B"})

	c := a.Invoke(ctx, "update_task", map[string]any{"task_id": float64(1), "completed": true})
	require.False(t, c.IsError, c.Text)
	assert.Contains(t, c.Text, "Task updated successfully:\n")
	assert.Contains(t, c.Text, `"title": "A"`)
	assert.Contains(t, c.Text, `"completed": true`)

	c = a.Invoke(ctx, "update_task", map[string]any{"task_id": float64(1), "completed": false})
	require.False(t, c.IsError, c.Text)
	assert.Contains(t, c.Text, `"completed": false`)
}

func TestAdapter_Delete(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()
	a.Invoke(ctx, "create_task", map[string]any{"title": "A", "description": "B"})

	c := a.Invoke(ctx, "delete_task", map[string]any{"task_id": float64(1)})
	require.False(t, c.IsError, c.Text)
	var deleted tasks.Deleted
	require.NoError(t, json.Unmarshal([]byte(c.Text), &deleted))
	assert.Equal(t, "Task deleted successfully", deleted.Message)
	assert.Equal(t, 1, deleted.Task.ID)

	c = a.Invoke(ctx, "delete_task", map[string]any{"task_id": float64(1)})
	assert.True(t, c.IsError)
	assert.Equal(t, `Error: 404 - {"detail":"Task not found"}`, c.Text)
}

func TestAdapter_Errors(t *testing.T) {
	tests := []struct {
		name       string
		tool       string
		args       map[string]any
		opts       []AdapterOption
		wantPrefix string
		wantText   string
	}{
		{
			name:     "unknown tool",
			tool:     "bogus_tool",
			wantText: "Error: Unknown tool: bogus_tool",
		},
		{
			name:     "missing task",
			tool:     "get_task",
			args:     map[string]any{"task_id": float64(999)},
			wantText: `Error: 404 - {"detail":"Task not found"}`,
		},
		{
			name:       "fractional task id",
			tool:       "get_task",
			args:       map[string]any{"task_id": 1.5},
			wantPrefix: "Error: invalid argument \"task_id\"",
		},
		{
			name:       "string task id is rejected by the schema",
			tool:       "get_task",
			args:       map[string]any{"task_id": "1"},
			opts:       []AdapterOption{WithSchemaValidation(true)},
			wantPrefix: "Error: invalid arguments for get_task",
		},
		{
			name:       "string task id fails the typed parse by default",
			tool:       "get_task",
			args:       map[string]any{"task_id": "1"},
			wantPrefix: "Error: invalid argument \"task_id\"",
		},
		{
			name:     "missing argument fails the typed parse by default",
			tool:     "create_task",
			args:     map[string]any{"title": "A"},
			wantText: "Error: invalid argument \"description\": required argument is missing",
		},
		{
			name:       "missing argument is reported by the schema when enabled",
			tool:       "create_task",
			args:       map[string]any{"title": "A"},
			opts:       []AdapterOption{WithSchemaValidation(true)},
			wantPrefix: "Error: invalid arguments for create_task: ",
		},
		{
			name:       "blank title is a validation error",
			tool:       "create_task",
			args:       map[string]any{"title": "  ", "description": "B"},
			wantPrefix: "Error: 422 - ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAdapter(t, tt.opts...)
			c := a.Invoke(context.Background(), tt.tool, tt.args)
			assert.True(t, c.IsError)
			if tt.wantText != "" {
				assert.Equal(t, tt.wantText, c.Text)
			}
			if tt.wantPrefix != "" {
				assert.Contains(t, c.Text, tt.wantPrefix)
			}
		})
	}
}

type panickingService struct {
	api.TaskService
}

func (panickingService) ListTasks(context.Context) ([]tasks.Task, error) {
	panic("store exploded")
}

func TestAdapter_RecoversPanics(t *testing.T) {
	a := NewAdapter(panickingService{})

	c := a.Invoke(context.Background(), "get_all_tasks", nil)
	assert.True(t, c.IsError)
	assert.Equal(t, "Error: tool get_all_tasks failed: store exploded", c.Text)
}
