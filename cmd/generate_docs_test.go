package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/taskmanager/internal/tools/tasks_tools"
)

func TestGenerateMarkdown(t *testing.T) {
	tools := tasks_tools.Tools()
	// Reverse to make sure output order does not depend on input order
	for i, j := 0, len(tools)-1; i < j; i, j = i+1, j-1 {
		tools[i], tools[j] = tools[j], tools[i]
	}

	md := generateMarkdown(tools)

	assert.Contains(t, md, "| GET | / | Welcome to Task Manager API |")
	assert.Contains(t, md, "| PUT | /tasks/{task_id} | Update a task |")
	assert.Contains(t, md, "Calls `DELETE /tasks/{task_id}`.")
	assert.Contains(t, md, "- `task_id` (number, required): The ID of the task to update")
	assert.Contains(t, md, "- `completed` (boolean, optional): Whether the task is completed (default: false)")

	var order []int
	for _, name := range []string{"get_all_tasks", "get_task", "create_task", "update_task", "delete_task"} {
		idx := strings.Index(md, "### "+name+"\n")
		require.GreaterOrEqual(t, idx, 0, name)
		order = append(order, idx)
	}
	assert.IsIncreasing(t, order)
}

func TestRunGenerateDocs_File(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tools.md")
	require.NoError(t, runGenerateDocs(out))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "### get_all_tasks")
	assert.Contains(t, string(raw), "No arguments.")
}
