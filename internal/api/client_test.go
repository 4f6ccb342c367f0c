package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/taskmanager/internal/logging"
	"github.com/teemow/taskmanager/internal/tasks"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	router := NewRouter(NewLocalClient(tasks.NewStore(), nil), WithLogger(logging.Discard().Logger()))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient_InvalidURL(t *testing.T) {
	tests := []string{
		"",
		"localhost:8000",
		"ftp://example.com",
		"http://",
		"://bad",
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			_, err := NewClient(raw)
			assert.Error(t, err)
		})
	}
}

func TestClient_AgainstRouter(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	c, err := NewClient(srv.URL + "/", WithClientLogger(logging.Discard()))
	require.NoError(t, err)

	list, err := c.ListTasks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	created, err := c.CreateTask(ctx, tasks.NewTask{
		Title:       tasks.String("A"),
		Description: tasks.String("x"),
		Completed:   tasks.Bool(false),
	})
	require.NoError(t, err)
	assert.Equal(t, tasks.Task{ID: 1, Title: "A", Description: "x"}, *created)

	updated, err := c.UpdateTask(ctx, 1, tasks.TaskUpdate{Title: tasks.String("A2")})
	require.NoError(t, err)
	assert.Equal(t, tasks.Task{ID: 1, Title: "A2", Description: "x"}, *updated)

	got, err := c.GetTask(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)

	deleted, err := c.DeleteTask(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, tasks.DeletedMessage, deleted.Message)
	assert.Equal(t, *updated, deleted.Task)
}

func TestClient_StatusErrors(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.GetTask(ctx, 999)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, `{"detail":"Task not found"}`, se.Body)

	_, err = c.CreateTask(ctx, tasks.NewTask{Description: tasks.String("x")})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnprocessableEntity, se.StatusCode)
	assert.Contains(t, se.Body, `"missing"`)
}

func TestClient_UpdateSendsOnlySetFields(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/tasks/4", r.URL.Path)
		require.NoError(t, jsonDecode(r, &received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":4,"title":"t","description":"d","completed":true}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.UpdateTask(context.Background(), 4, tasks.TaskUpdate{Completed: tasks.Bool(true)})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"completed": true}, received)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url, WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = c.ListTasks(context.Background())
	require.Error(t, err)
	var se *StatusError
	assert.NotErrorAs(t, err, &se)
	assert.Contains(t, err.Error(), "GET /tasks")
}

func TestClient_TrimsErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("  upstream down \n"))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.GetTask(context.Background(), 1)
	assert.EqualError(t, err, "502 - upstream down")
}

func jsonDecode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
