package tasks_tools

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/taskmanager/internal/tasks"
)

// Argument names shared by the tools.
const (
	argTaskID      = "task_id"
	argTitle       = "title"
	argDescription = "description"
	argCompleted   = "completed"
)

// toolArguments declares the input properties of each tool.
var toolArguments = map[string][]mcp.ToolOption{
	tasks.OperationList: nil,
	tasks.OperationGet: {
		mcp.WithNumber(argTaskID,
			mcp.Required(),
			mcp.Description("The ID of the task to retrieve"),
		),
	},
	tasks.OperationCreate: {
		mcp.WithString(argTitle,
			mcp.Required(),
			mcp.Description("The title of the task"),
		),
		mcp.WithString(argDescription,
			mcp.Required(),
			mcp.Description("The description of the task"),
		),
		mcp.WithBoolean(argCompleted,
			mcp.Description("Whether the task is completed (default: false)"),
		),
	},
	tasks.OperationUpdate: {
		mcp.WithNumber(argTaskID,
			mcp.Required(),
			mcp.Description("The ID of the task to update"),
		),
		mcp.WithString(argTitle,
			mcp.Description("The new title of the task (optional)"),
		),
		mcp.WithString(argDescription,
			mcp.Description("The new description of the task (optional)"),
		),
		mcp.WithBoolean(argCompleted,
			mcp.Description("Whether the task is completed (optional)"),
		),
	},
	tasks.OperationDelete: {
		mcp.WithNumber(argTaskID,
			mcp.Required(),
			mcp.Description("The ID of the task to delete"),
		),
	},
}

// Tools returns the descriptors of all task tools in declaration order.
func Tools() []mcp.Tool {
	out := make([]mcp.Tool, 0, len(tasks.Operations))
	for _, op := range tasks.Operations {
		out = append(out, newTool(op))
	}
	return out
}

// LookupTool returns the descriptor of the named tool.
func LookupTool(name string) (mcp.Tool, bool) {
	op, ok := tasks.OperationByTool(name)
	if !ok {
		return mcp.Tool{}, false
	}
	return newTool(op), true
}

// IsTaskTool reports whether name is one of the task tools.
func IsTaskTool(name string) bool {
	_, ok := tasks.OperationByTool(name)
	return ok
}

func newTool(op tasks.Operation) mcp.Tool {
	opts := make([]mcp.ToolOption, 0, len(toolArguments[op.Name])+1)
	opts = append(opts, mcp.WithDescription(op.ToolDescription))
	opts = append(opts, toolArguments[op.Name]...)
	return mcp.NewTool(op.Tool, opts...)
}
