package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/taskmanager/internal/server"
	"github.com/teemow/taskmanager/internal/tasks"
)

// AllTasksURI addresses the full task list.
const AllTasksURI = "tasks://all"

const mimeTypeJSON = "application/json"

// RegisterTaskResources registers the task list resource on s.
func RegisterTaskResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	allTasks := mcp.NewResource(
		AllTasksURI,
		"All Tasks",
		mcp.WithResourceDescription("Every task currently stored in the Task Manager"),
		mcp.WithMIMEType(mimeTypeJSON),
	)

	s.AddResource(allTasks, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleAllTasks(ctx, request, sc)
	})
	return nil
}

func handleAllTasks(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	list, err := sc.TaskService().ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if list == nil {
		list = []tasks.Task{}
	}

	jsonData, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tasks: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: mimeTypeJSON,
			Text:     string(jsonData),
		},
	}, nil
}
