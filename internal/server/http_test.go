package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIServer_Routes(t *testing.T) {
	sc := newLocalContext(t)
	srv := NewAPIServer(sc, NewHealthChecker(sc))

	tests := []struct {
		method   string
		path     string
		body     string
		wantCode int
		wantBody string
	}{
		{method: http.MethodGet, path: "/", wantCode: http.StatusOK, wantBody: "Welcome"},
		{method: http.MethodGet, path: "/tasks", wantCode: http.StatusOK, wantBody: "[]"},
		{method: http.MethodPost, path: "/tasks", body: `{"title":"A","description":"B"}`, wantCode: http.StatusOK, wantBody: `"id":1`},
		{method: http.MethodGet, path: "/tasks/99", wantCode: http.StatusNotFound, wantBody: `{"detail":"Task not found"}`},
		{method: http.MethodGet, path: "/healthz", wantCode: http.StatusOK, wantBody: `"status":"ok"`},
		{method: http.MethodGet, path: "/healthz/detailed", wantCode: http.StatusOK, wantBody: `"tasks":1`},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, body))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestNewMCPHTTPServer_Health(t *testing.T) {
	s := mcpserver.NewMCPServer("taskmanager-test", "test")
	srv := NewMCPHTTPServer(s, NewHealthChecker(nil))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHTTPServer_Lifecycle(t *testing.T) {
	srv := NewHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	}))
	assert.Empty(t, srv.Addr())

	ready := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.StartWithReadySignal("127.0.0.1:0", ready)
	}()

	select {
	case <-ready:
	case err := <-errCh:
		t.Fatalf("server failed to start: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for server")
	}

	addr := srv.Addr()
	require.NotEmpty(t, addr)

	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(b))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, <-errCh)
}

func TestHTTPServer_ShutdownBeforeStart(t *testing.T) {
	srv := NewHTTPServer(http.NotFoundHandler())
	assert.NoError(t, srv.Shutdown(context.Background()))
}

func TestHTTPServer_ListenError(t *testing.T) {
	srv := NewHTTPServer(http.NotFoundHandler())
	err := srv.Start("not-an-address")
	assert.Error(t, err)
}
