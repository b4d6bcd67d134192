package api

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordAnalysis(t *testing.T) {
	env := setupTestServer(t, nil, ServerConfig{MaxInputChars: 4})

	doJSON(t, env.handler, "POST", "/api/v1/analyze", TextRequest{Text: "Aあ🚀"}, nil)
	doJSON(t, env.handler, "POST", "/api/v1/analyze", TextRequest{Text: "too long"}, nil)

	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.analysesTotal.WithLabelValues("analyze")))
	assert.Equal(t, float64(3), testutil.ToFloat64(env.metrics.charactersAnalyzed))
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.unrepresentableChars))
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.inputLimitRejections))
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.httpRequestsTotal.WithLabelValues("POST", "/api/v1/analyze", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.httpRequestsTotal.WithLabelValues("POST", "/api/v1/analyze", "400")))
}

func TestMetrics_RecordMisread(t *testing.T) {
	env := setupTestServer(t, nil, ServerConfig{})

	doJSON(t, env.handler, "POST", "/api/v1/decode", DecodeRequest{Hex: "82 A0", Encoding: "sjis"}, nil)

	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.misreadsTotal.WithLabelValues("shift_jis", "ok")))
}

func TestMetrics_Tutor(t *testing.T) {
	env := setupTestServer(t, &stubAsker{enabled: true, answer: "yes"}, ServerConfig{})

	doJSON(t, env.handler, "POST", "/api/v1/ask", AskRequest{Question: "q"}, nil)

	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.tutorRequestsTotal.WithLabelValues(statusSuccess)))
	assert.Equal(t, 1, testutil.CollectAndCount(env.metrics.tutorRequestDuration))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/", http.StatusOK, 0)
		m.RecordAnalysis("analyze", 1, 0)
		m.RecordMisread("utf8", "ok")
		m.RecordInputLimitRejection()
		m.RecordTutorRequest(true, 0)
		m.RecordSnippetOperation("create", true)
		m.RecordAuthRequest(true)
		m.RecordHealthCheck(true)
	})

	called := false
	h := m.InstrumentHandler("GET", "/", func(http.ResponseWriter, *http.Request) { called = true })
	h(nil, nil)
	assert.True(t, called)
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}
