package tasks_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/taskmanager/internal/server"
	"github.com/teemow/taskmanager/internal/tools/common"
)

// RegisterTasksTools registers every task tool on s. Calls are served by the
// task service of sc and wrapped with tool instrumentation.
func RegisterTasksTools(s *mcpserver.MCPServer, sc *server.ServerContext, opts ...AdapterOption) error {
	adapter := NewAdapter(sc.TaskService(), opts...)

	for _, tool := range Tools() {
		s.AddTool(tool, common.InstrumentedToolHandler(tool.Name, sc, adapter.handler(tool.Name)))
	}
	return nil
}

// handler exposes a single tool as an mcp-go handler. Failures are returned
// as error results, never as protocol errors.
func (a *Adapter) handler(name string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		c := a.Invoke(ctx, name, request.GetArguments())
		if c.IsError {
			return mcp.NewToolResultError(c.Text), nil
		}
		return mcp.NewToolResultText(c.Text), nil
	}
}
