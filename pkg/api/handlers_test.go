package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/ssargent/mojilens/pkg/analyzer"
	"github.com/ssargent/mojilens/pkg/charset"
	"github.com/ssargent/mojilens/pkg/storage"
	"github.com/ssargent/mojilens/pkg/tutor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAsker answers with a fixed reply or error
type stubAsker struct {
	enabled bool
	answer  string
	err     error

	question string
	context  string
}

func (s *stubAsker) Ask(_ context.Context, question, analysisContext string) (string, error) {
	s.question = question
	s.context = analysisContext
	return s.answer, s.err
}

func (s *stubAsker) Enabled() bool { return s.enabled }

type testEnv struct {
	server   *Server
	handler  http.Handler
	snippets *storage.SnippetStore
	metrics  *Metrics
	registry *prometheus.Registry
}

func setupTestServer(t *testing.T, asker tutor.Asker, config ServerConfig, opts ...analyzer.Option) *testEnv {
	t.Helper()

	snippets, err := storage.NewSnippetStore(filepath.Join(t.TempDir(), "snippets"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = snippets.Close() })

	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	server := NewServer(Dependencies{
		Engine:   analyzer.New(opts...),
		Tutor:    asker,
		Snippets: snippets,
	}, config, metrics)

	return &testEnv{
		server:   server,
		handler:  NewRouter(server),
		snippets: snippets,
		metrics:  metrics,
		registry: registry,
	}
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return w, resp
}

// dataAs re-decodes the envelope's data field into v
func dataAs(t *testing.T, resp APIResponse, v interface{}) {
	t.Helper()
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func TestServer_handleHealth(t *testing.T) {
	t.Run("all capabilities", func(t *testing.T) {
		env := setupTestServer(t, &stubAsker{enabled: true}, ServerConfig{})

		w, resp := doJSON(t, env.handler, "GET", "/api/v1/health", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)

		var health HealthResponse
		dataAs(t, resp, &health)
		assert.Equal(t, HealthResponse{Status: "healthy", Legacy: "Shift_JIS", Tutor: "enabled", Snippets: "enabled"}, health)
	})

	t.Run("legacy codec missing", func(t *testing.T) {
		env := setupTestServer(t, nil, ServerConfig{}, analyzer.WithLegacy(charset.MissingLegacy()))

		_, resp := doJSON(t, env.handler, "GET", "/api/v1/health", nil, nil)

		var health HealthResponse
		dataAs(t, resp, &health)
		assert.Equal(t, "unavailable", health.Legacy)
		assert.Equal(t, "disabled", health.Tutor)
	})
}

func TestServer_handleAnalyze(t *testing.T) {
	tests := []struct {
		name             string
		text             string
		maxChars         int
		expectedStatus   int
		expectedChars    int
		representable    bool
		expectedUTF8Size int
	}{
		{name: "hiragana", text: "あ", expectedStatus: http.StatusOK, expectedChars: 1, representable: true, expectedUTF8Size: 3},
		{name: "mixed with emoji", text: "Aあ🚀", expectedStatus: http.StatusOK, expectedChars: 3, representable: false, expectedUTF8Size: 8},
		{name: "empty input", text: "", expectedStatus: http.StatusOK, expectedChars: 0, representable: true},
		{name: "at the limit", text: "abc", maxChars: 3, expectedStatus: http.StatusOK, expectedChars: 3, representable: true, expectedUTF8Size: 3},
		{name: "over the limit", text: "abcd", maxChars: 3, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestServer(t, nil, ServerConfig{MaxInputChars: tt.maxChars})

			w, resp := doJSON(t, env.handler, "POST", "/api/v1/analyze", TextRequest{Text: tt.text}, nil)
			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				assert.False(t, resp.Success)
				assert.Contains(t, resp.Error, "limit")
				return
			}

			var analysis analyzer.Analysis
			dataAs(t, resp, &analysis)
			assert.Equal(t, tt.text, analysis.Text)
			assert.Equal(t, tt.expectedChars, analysis.CharacterCount)
			assert.Len(t, analysis.Records, tt.expectedChars)
			assert.Equal(t, tt.representable, analysis.LegacyRepresentable)
			assert.Equal(t, tt.expectedUTF8Size, analysis.TotalUTF8Bytes)
		})
	}
}

func TestServer_handleAnalyze_Fixture(t *testing.T) {
	env := setupTestServer(t, nil, ServerConfig{})

	_, resp := doJSON(t, env.handler, "POST", "/api/v1/analyze", TextRequest{Text: "あ"}, nil)

	var analysis analyzer.Analysis
	dataAs(t, resp, &analysis)
	require.Len(t, analysis.Records, 1)

	rec := analysis.Records[0]
	assert.Equal(t, "U+3042", rec.CodePoint)
	assert.Equal(t, "E3 81 82", rec.UTF8.Hex)
	assert.Equal(t, "11100011 10000001 10000010", rec.UTF8.Binary)
	assert.Equal(t, "82 A0", rec.Legacy.Hex)
	assert.True(t, rec.Legacy.IsValid)
}

func TestServer_handleAnalyze_InvalidJSON(t *testing.T) {
	env := setupTestServer(t, nil, ServerConfig{})

	req := httptest.NewRequest("POST", "/api/v1/analyze", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_handleMojibake(t *testing.T) {
	t.Run("both directions", func(t *testing.T) {
		env := setupTestServer(t, nil, ServerConfig{})

		w, resp := doJSON(t, env.handler, "POST", "/api/v1/mojibake", TextRequest{Text: "あ"}, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var report analyzer.MojibakeReport
		dataAs(t, resp, &report)
		assert.Equal(t, "E3 81 82", report.UTF8Bytes.Hex)
		assert.Equal(t, "82 A0", report.LegacyBytes.Hex)
		assert.False(t, report.Lossy)
		assert.Equal(t, analyzer.MisreadOK, report.UTF8AsLegacy.Status)
		assert.NotEqual(t, "あ", report.UTF8AsLegacy.Text)
		assert.Contains(t, report.LegacyAsUTF8.Text, "\uFFFD")
	})

	t.Run("legacy codec missing", func(t *testing.T) {
		env := setupTestServer(t, nil, ServerConfig{}, analyzer.WithLegacy(charset.MissingLegacy()))

		_, resp := doJSON(t, env.handler, "POST", "/api/v1/mojibake", TextRequest{Text: "あ"}, nil)

		var report analyzer.MojibakeReport
		dataAs(t, resp, &report)
		assert.Equal(t, analyzer.MisreadUnavailable, report.UTF8AsLegacy.Status)
		assert.NotEmpty(t, report.UTF8AsLegacy.Message)
	})
}

func TestServer_handleDecode(t *testing.T) {
	tests := []struct {
		name           string
		req            DecodeRequest
		expectedStatus int
		expectedText   string
		expectedHex    string
	}{
		{
			name:           "hex as utf8",
			req:            DecodeRequest{Hex: "E3 81 82", Encoding: "utf8"},
			expectedStatus: http.StatusOK,
			expectedText:   "あ",
			expectedHex:    "E3 81 82",
		},
		{
			name:           "binary as shift_jis",
			req:            DecodeRequest{Binary: "10000010 10100000", Encoding: "sjis"},
			expectedStatus: http.StatusOK,
			expectedText:   "あ",
			expectedHex:    "82 A0",
		},
		{
			name:           "invalid utf8 byte",
			req:            DecodeRequest{Hex: "82 A0", Encoding: "UTF-8"},
			expectedStatus: http.StatusOK,
			expectedText:   "\uFFFD\uFFFD",
			expectedHex:    "82 A0",
		},
		{
			name:           "both hex and binary",
			req:            DecodeRequest{Hex: "41", Binary: "01000001", Encoding: "utf8"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "neither hex nor binary",
			req:            DecodeRequest{Encoding: "utf8"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed hex",
			req:            DecodeRequest{Hex: "E3 8", Encoding: "utf8"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown encoding",
			req:            DecodeRequest{Hex: "41", Encoding: "latin1"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestServer(t, nil, ServerConfig{})

			w, resp := doJSON(t, env.handler, "POST", "/api/v1/decode", tt.req, nil)
			require.Equal(t, tt.expectedStatus, w.Code, resp.Error)
			if tt.expectedStatus != http.StatusOK {
				assert.False(t, resp.Success)
				assert.NotEmpty(t, resp.Error)
				return
			}

			var decoded DecodeResponse
			dataAs(t, resp, &decoded)
			assert.Equal(t, analyzer.MisreadOK, decoded.Result.Status)
			assert.Equal(t, tt.expectedText, decoded.Result.Text)
			assert.Equal(t, tt.expectedHex, decoded.Bytes.Hex)
		})
	}
}

func TestServer_handleAsk(t *testing.T) {
	tests := []struct {
		name           string
		asker          tutor.Asker
		req            AskRequest
		expectedStatus int
		expectedAnswer string
	}{
		{
			name:           "answered",
			asker:          &stubAsker{enabled: true, answer: "Shift_JIS has no emoji."},
			req:            AskRequest{Question: "Why is 🚀 invalid?", Context: "Input \"🚀\""},
			expectedStatus: http.StatusOK,
			expectedAnswer: "Shift_JIS has no emoji.",
		},
		{
			name:           "tutor disabled",
			asker:          &stubAsker{enabled: false},
			req:            AskRequest{Question: "hello?"},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "no tutor at all",
			asker:          nil,
			req:            AskRequest{Question: "hello?"},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "empty question",
			asker:          &stubAsker{enabled: true},
			req:            AskRequest{Question: "   "},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "upstream failure",
			asker:          &stubAsker{enabled: true, err: errors.New("connection refused")},
			req:            AskRequest{Question: "hello?"},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "not configured at call time",
			asker:          &stubAsker{enabled: true, err: tutor.ErrNotConfigured},
			req:            AskRequest{Question: "hello?"},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestServer(t, tt.asker, ServerConfig{})

			w, resp := doJSON(t, env.handler, "POST", "/api/v1/ask", tt.req, nil)
			require.Equal(t, tt.expectedStatus, w.Code, resp.Error)
			if tt.expectedStatus != http.StatusOK {
				assert.False(t, resp.Success)
				return
			}

			var answer AskResponse
			dataAs(t, resp, &answer)
			assert.Equal(t, tt.expectedAnswer, answer.Answer)

			stub := tt.asker.(*stubAsker)
			assert.Equal(t, tt.req.Question, stub.question)
			assert.Equal(t, tt.req.Context, stub.context)
		})
	}
}

func TestServer_Snippets(t *testing.T) {
	env := setupTestServer(t, nil, ServerConfig{MaxInputChars: 8})

	// Create
	w, resp := doJSON(t, env.handler, "POST", "/api/v1/snippets", SnippetRequest{Label: "greeting", Text: "こんにちは"}, nil)
	require.Equal(t, http.StatusCreated, w.Code, resp.Error)

	var created storage.Snippet
	dataAs(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "greeting", created.Label)

	// Get recomputes the analysis
	w, resp = doJSON(t, env.handler, "GET", "/api/v1/snippets/"+created.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched SnippetResponse
	dataAs(t, resp, &fetched)
	assert.Equal(t, "こんにちは", fetched.Text)
	assert.Equal(t, 5, fetched.Analysis.CharacterCount)
	assert.Equal(t, 10, fetched.Analysis.TotalLegacyBytes)
	assert.True(t, fetched.Analysis.LegacyRepresentable)

	// List
	w, resp = doJSON(t, env.handler, "GET", "/api/v1/snippets", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed []storage.Snippet
	dataAs(t, resp, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// Delete
	w, _ = doJSON(t, env.handler, "DELETE", "/api/v1/snippets/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, env.handler, "GET", "/api/v1/snippets/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_SnippetErrors(t *testing.T) {
	env := setupTestServer(t, nil, ServerConfig{MaxInputChars: 4})

	tests := []struct {
		name           string
		method         string
		path           string
		body           interface{}
		expectedStatus int
	}{
		{name: "empty text", method: "POST", path: "/api/v1/snippets", body: SnippetRequest{Label: "x"}, expectedStatus: http.StatusBadRequest},
		{name: "text over limit", method: "POST", path: "/api/v1/snippets", body: SnippetRequest{Text: "abcde"}, expectedStatus: http.StatusBadRequest},
		{name: "bad limit", method: "GET", path: "/api/v1/snippets?limit=abc", expectedStatus: http.StatusBadRequest},
		{name: "negative limit", method: "GET", path: "/api/v1/snippets?limit=-1", expectedStatus: http.StatusBadRequest},
		{name: "unknown id", method: "GET", path: "/api/v1/snippets/not-a-ksuid", expectedStatus: http.StatusNotFound},
		{name: "delete unknown id", method: "DELETE", path: "/api/v1/snippets/not-a-ksuid", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doJSON(t, env.handler, tt.method, tt.path, tt.body, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.False(t, resp.Success)
		})
	}
}

func TestServer_SnippetsDisabled(t *testing.T) {
	server := NewServer(Dependencies{Engine: analyzer.New()}, ServerConfig{}, nil)
	handler := NewRouter(server)

	w, resp := doJSON(t, handler, "GET", "/api/v1/snippets", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, resp.Error, "not configured")
}
