package resources

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/taskmanager/internal/api"
	"github.com/teemow/taskmanager/internal/server"
	"github.com/teemow/taskmanager/internal/tasks"
)

func newContext(t *testing.T, svc api.TaskService) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(context.Background(), svc)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func readRequest() mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = AllTasksURI
	return req
}

func TestHandleAllTasks(t *testing.T) {
	store := tasks.NewStore()
	sc := newContext(t, api.NewLocalClient(store, nil))

	contents, err := handleAllTasks(context.Background(), readRequest(), sc)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text := contents[0].(*mcp.TextResourceContents)
	assert.Equal(t, AllTasksURI, text.URI)
	assert.Equal(t, "application/json", text.MIMEType)
	assert.Equal(t, "[]", text.Text)

	_, err = store.Create(tasks.NewTask{Title: tasks.String("A"), Description: tasks.String("B")})
	require.NoError(t, err)

	contents, err = handleAllTasks(context.Background(), readRequest(), sc)
	require.NoError(t, err)
	var list []tasks.Task
	require.NoError(t, json.Unmarshal([]byte(contents[0].(*mcp.TextResourceContents).Text), &list))
	assert.Equal(t, []tasks.Task{{ID: 1, Title: "A", Description: "B"}}, list)
}

type unavailableService struct {
	api.TaskService
}

func (unavailableService) ListTasks(context.Context) ([]tasks.Task, error) {
	return nil, errors.New("connection refused")
}

func TestHandleAllTasks_Error(t *testing.T) {
	sc := newContext(t, unavailableService{})

	_, err := handleAllTasks(context.Background(), readRequest(), sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRegisterTaskResources(t *testing.T) {
	sc := newContext(t, api.NewLocalClient(tasks.NewStore(), nil))
	s := mcpserver.NewMCPServer("taskmanager-test", "test", mcpserver.WithResourceCapabilities(false, false))
	require.NoError(t, RegisterTaskResources(s, sc))

	resp := s.HandleMessage(context.Background(), json.RawMessage(
		`{"jsonrpc":"2.0","id":1,"method":"resources/read","params":{"uri":"tasks://all"}}`,
	))
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"uri":"tasks://all"`)
	assert.Contains(t, string(raw), `"mimeType":"application/json"`)
}
