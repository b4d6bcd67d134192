package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		apiKey         string
		requestHeader  string
		expectedStatus int
		expectedAuth   string
	}{
		{
			name:           "valid API key",
			apiKey:         "test-key",
			requestHeader:  "test-key",
			expectedStatus: http.StatusOK,
			expectedAuth:   statusSuccess,
		},
		{
			name:           "missing API key header",
			apiKey:         "test-key",
			requestHeader:  "",
			expectedStatus: http.StatusUnauthorized,
			expectedAuth:   statusError,
		},
		{
			name:           "invalid API key",
			apiKey:         "test-key",
			requestHeader:  "wrong-key",
			expectedStatus: http.StatusUnauthorized,
			expectedAuth:   statusError,
		},
		{
			name:           "no key configured",
			apiKey:         "",
			requestHeader:  "",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no key configured ignores header",
			apiKey:         "",
			requestHeader:  "anything",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := NewMetrics(prometheus.NewRegistry())

			// Create a test handler that just returns 200
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			handler := apiKeyMiddleware(tt.apiKey, metrics)(testHandler)

			req := httptest.NewRequest("POST", "/test", nil)
			if tt.requestHeader != "" {
				req.Header.Set("X-API-Key", tt.requestHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedAuth != "" {
				assert.Equal(t, float64(1), testutil.ToFloat64(metrics.authRequestsTotal.WithLabelValues(tt.expectedAuth)))
			} else {
				assert.Equal(t, 0, testutil.CollectAndCount(metrics.authRequestsTotal))
			}
		})
	}
}

func TestWriteRoutesRequireKey(t *testing.T) {
	env := setupTestServer(t, &stubAsker{enabled: true, answer: "ok"}, ServerConfig{APIKey: "secret"})

	tests := []struct {
		name           string
		method         string
		path           string
		body           interface{}
		key            string
		expectedStatus int
	}{
		{name: "ask without key", method: "POST", path: "/api/v1/ask", body: AskRequest{Question: "q"}, expectedStatus: http.StatusUnauthorized},
		{name: "ask with key", method: "POST", path: "/api/v1/ask", body: AskRequest{Question: "q"}, key: "secret", expectedStatus: http.StatusOK},
		{name: "create snippet without key", method: "POST", path: "/api/v1/snippets", body: SnippetRequest{Text: "あ"}, expectedStatus: http.StatusUnauthorized},
		{name: "create snippet with key", method: "POST", path: "/api/v1/snippets", body: SnippetRequest{Text: "あ"}, key: "secret", expectedStatus: http.StatusCreated},
		{name: "delete without key", method: "DELETE", path: "/api/v1/snippets/abc", expectedStatus: http.StatusUnauthorized},
		{name: "analyze stays open", method: "POST", path: "/api/v1/analyze", body: TextRequest{Text: "あ"}, expectedStatus: http.StatusOK},
		{name: "list stays open", method: "GET", path: "/api/v1/snippets", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.key != "" {
				headers["X-API-Key"] = tt.key
			}
			w, _ := doJSON(t, env.handler, tt.method, tt.path, tt.body, headers)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestSendSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"message": "test"}

	sendSuccess(w, data)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, map[string]interface{}{"message": "test"}, response.Data)
	assert.Empty(t, response.Error)
}

func TestSendError(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		statusCode int
	}{
		{name: "bad request error", message: "Invalid request", statusCode: http.StatusBadRequest},
		{name: "unauthorized error", message: "Not authorized", statusCode: http.StatusUnauthorized},
		{name: "bad gateway error", message: "Upstream failed", statusCode: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			sendError(w, tt.message, tt.statusCode)

			assert.Equal(t, tt.statusCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var response APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.False(t, response.Success)
			assert.Equal(t, tt.message, response.Error)
			assert.Nil(t, response.Data)
		})
	}
}
