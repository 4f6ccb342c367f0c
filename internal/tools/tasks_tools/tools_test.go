package tasks_tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/taskmanager/internal/api"
	"github.com/teemow/taskmanager/internal/server"
	"github.com/teemow/taskmanager/internal/tasks"
)

func newRegisteredServer(t *testing.T) *mcpserver.MCPServer {
	t.Helper()
	sc, err := server.NewServerContext(context.Background(), api.NewLocalClient(tasks.NewStore(), nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	s := mcpserver.NewMCPServer("taskmanager-test", "test", mcpserver.WithToolCapabilities(true))
	require.NoError(t, RegisterTasksTools(s, sc))
	return s
}

func callTool(t *testing.T, s *mcpserver.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	registered, ok := s.ListTools()[name]
	require.True(t, ok, "tool %s not registered", name)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	result, err := registered.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	tc, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return tc.Text
}

func TestRegisterTasksTools_RegistersAll(t *testing.T) {
	s := newRegisteredServer(t)

	registered := s.ListTools()
	assert.Len(t, registered, len(tasks.Operations))
	for _, tool := range Tools() {
		st, ok := registered[tool.Name]
		require.True(t, ok, tool.Name)
		assert.Equal(t, tool.Description, st.Tool.Description)
	}
}

func TestRegisterTasksTools_RoundTrip(t *testing.T) {
	s := newRegisteredServer(t)

	result := callTool(t, s, "create_task", map[string]any{"title": "A", "description": "B"})
	assert.False(t, result.IsError)
	assert.Contains(t, textOf(t, result), `"id": 1`)

	result = callTool(t, s, "get_task", map[string]any{"task_id": float64(999)})
	assert.True(t, result.IsError)
	assert.Equal(t, `Error: 404 - {"detail":"Task not found"}`, textOf(t, result))

	result = callTool(t, s, "get_all_tasks", nil)
	assert.False(t, result.IsError)
	assert.Contains(t, textOf(t, result), `"title": "A"`)
}

// handleJSONRPC sends a raw JSON-RPC message through the server and decodes
// the response generically.
func handleJSONRPC(t *testing.T, s *mcpserver.MCPServer, msg string) map[string]any {
	t.Helper()
	resp := s.HandleMessage(context.Background(), json.RawMessage(msg))
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestRegisterTasksTools_JSONRPC(t *testing.T) {
	s := newRegisteredServer(t)

	resp := handleJSONRPC(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	result, ok := resp["result"].(map[string]any)
	require.True(t, ok, "unexpected response: %v", resp)
	tools, ok := result["tools"].([]any)
	require.True(t, ok)
	assert.Len(t, tools, 5)

	resp = handleJSONRPC(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"update_task","arguments":{"task_id":7,"completed":true}}}`)
	result, ok = resp["result"].(map[string]any)
	require.True(t, ok, "unexpected response: %v", resp)
	assert.Equal(t, true, result["isError"])
	content := result["content"].([]any)
	require.Len(t, content, 1)
	assert.Equal(t, `Error: 404 - {"detail":"Task not found"}`, content[0].(map[string]any)["text"])
}
