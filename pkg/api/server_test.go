package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/ssargent/mojilens/pkg/analyzer"
)

func TestSwaggerDocRegistered(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)
	assert.Contains(t, doc, "mojilens REST API")
	assert.Contains(t, doc, "/analyze")
	assert.Contains(t, doc, "X-API-Key")
}

func TestRouter_Swagger(t *testing.T) {
	env := setupTestServer(t, nil, ServerConfig{})

	tests := []struct {
		path           string
		expectedStatus int
		contentType    string
	}{
		{path: "/swagger/index.html", expectedStatus: http.StatusOK, contentType: "text/html"},
		{path: "/swagger/swagger.json", expectedStatus: http.StatusOK, contentType: "application/json"},
		{path: "/swagger/missing", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req, err := http.NewRequest("GET", tt.path, nil)
			require.NoError(t, err)
			w := httptest.NewRecorder()
			env.handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.contentType != "" {
				assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), tt.contentType))
			}
		})
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	env := setupTestServer(t, nil, ServerConfig{})

	req, err := http.NewRequest("GET", "/metrics", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStartServer(t *testing.T) {
	t.Run("requires an engine", func(t *testing.T) {
		err := StartServer(context.Background(), Dependencies{}, ServerConfig{})
		assert.Error(t, err)
	})

	t.Run("serves until cancelled", func(t *testing.T) {
		port := freePort(t)
		ctx, cancel := context.WithCancel(context.Background())

		errCh := make(chan error, 1)
		go func() {
			errCh <- NewServerFactory().CreateServerStarter().StartServer(ctx,
				Dependencies{Engine: analyzer.New()},
				ServerConfig{Port: port, Bind: "127.0.0.1"})
		}()

		url := fmt.Sprintf("http://127.0.0.1:%d/api/v1/health", port)
		require.Eventually(t, func() bool {
			resp, err := http.Get(url)
			if err != nil {
				return false
			}
			resp.Body.Close()
			return resp.StatusCode == http.StatusOK
		}, 5*time.Second, 50*time.Millisecond)

		cancel()
		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(10 * time.Second):
			t.Fatal("server did not shut down")
		}
	})
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}
