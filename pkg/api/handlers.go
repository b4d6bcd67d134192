package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rivo/uniseg"
	"github.com/ssargent/mojilens/pkg/charset"
	"github.com/ssargent/mojilens/pkg/codec"
	"github.com/ssargent/mojilens/pkg/logging"
	"github.com/ssargent/mojilens/pkg/storage"
	"github.com/ssargent/mojilens/pkg/tutor"
)

// maxBodyBytes bounds request bodies; inputs are a handful of characters
const maxBodyBytes = 64 << 10

// Server holds the API server state
type Server struct {
	engine   Engine
	tutor    tutor.Asker
	snippets SnippetStore
	config   ServerConfig
	metrics  *Metrics
	logger   *slog.Logger
}

// NewServer creates a new API server
func NewServer(deps Dependencies, config ServerConfig, metrics *Metrics) *Server {
	logger := config.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		engine:   deps.Engine,
		tutor:    deps.Tutor,
		snippets: deps.Snippets,
		config:   config,
		metrics:  metrics,
		logger:   logger,
	}
}

// decodeJSON reads a size-limited JSON body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON in request body: %w", err)
	}
	return nil
}

// checkInputLength enforces the configured character limit
func (s *Server) checkInputLength(w http.ResponseWriter, text string) bool {
	if s.config.MaxInputChars <= 0 {
		return true
	}
	if n := uniseg.GraphemeClusterCount(text); n > s.config.MaxInputChars {
		s.metrics.RecordInputLimitRejection()
		sendError(w, fmt.Sprintf("Input has %d characters; the limit is %d", n, s.config.MaxInputChars), http.StatusBadRequest)
		return false
	}
	return true
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API and which optional capabilities are loaded
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)

	resp := HealthResponse{
		Status:   "healthy",
		Legacy:   "unavailable",
		Tutor:    "disabled",
		Snippets: "disabled",
	}
	if s.engine.LegacyAvailable() {
		resp.Legacy = s.engine.LegacyKind().DisplayName()
	}
	if s.tutor != nil && s.tutor.Enabled() {
		resp.Tutor = "enabled"
	}
	if s.snippets != nil {
		resp.Snippets = "enabled"
	}
	sendSuccess(w, resp)
}

// handleAnalyze godoc
//
//	@Summary		Analyze text
//	@Description	Break the input into characters and show each one's UTF-8 and Shift_JIS bytes
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			body	body		TextRequest	true	"Input text"
//	@Success		200		{object}	analyzer.Analysis
//	@Failure		400		{object}	APIResponse
//	@Router			/analyze [post]
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.checkInputLength(w, req.Text) {
		return
	}

	analysis := s.engine.Summarize(req.Text)
	unrepresentable := 0
	if analysis.LegacyAvailable {
		unrepresentable = len(analysis.InvalidChars())
	}
	s.metrics.RecordAnalysis("analyze", analysis.CharacterCount, unrepresentable)
	s.logger.Debug("analyzed input",
		"chars", analysis.CharacterCount,
		"utf8_bytes", analysis.TotalUTF8Bytes,
		"legacy_representable", analysis.LegacyRepresentable)

	sendSuccess(w, analysis)
}

// handleMojibake godoc
//
//	@Summary		Simulate mojibake
//	@Description	Show the input's UTF-8 bytes read as Shift_JIS and its Shift_JIS bytes read as UTF-8
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			body	body		TextRequest	true	"Input text"
//	@Success		200		{object}	analyzer.MojibakeReport
//	@Failure		400		{object}	APIResponse
//	@Router			/mojibake [post]
func (s *Server) handleMojibake(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.checkInputLength(w, req.Text) {
		return
	}

	report := s.engine.Mojibake(req.Text)
	s.metrics.RecordMisread(string(report.UTF8AsLegacy.DecodedAs), string(report.UTF8AsLegacy.Status))
	s.metrics.RecordMisread(string(report.LegacyAsUTF8.DecodedAs), string(report.LegacyAsUTF8.Status))

	sendSuccess(w, report)
}

// handleDecode godoc
//
//	@Summary		Decode bytes
//	@Description	Parse hex or binary byte groups and read them with the named encoding
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			body	body		DecodeRequest	true	"Bytes and encoding"
//	@Success		200		{object}	DecodeResponse
//	@Failure		400		{object}	APIResponse
//	@Router			/decode [post]
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	hasHex := strings.TrimSpace(req.Hex) != ""
	hasBinary := strings.TrimSpace(req.Binary) != ""
	if hasHex == hasBinary {
		sendError(w, "Exactly one of hex or binary is required", http.StatusBadRequest)
		return
	}

	kind, err := charset.ParseEncodingKind(req.Encoding)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var b []byte
	if hasHex {
		b, err = codec.ParseHex(req.Hex)
	} else {
		b, err = codec.ParseBinary(req.Binary)
	}
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	misread := s.engine.SimulateMisread(b, kind)
	s.metrics.RecordMisread(string(kind), string(misread.Status))

	sendSuccess(w, DecodeResponse{
		Bytes:  codec.NewByteView(b),
		Result: misread,
	})
}

// handleAsk godoc
//
//	@Summary		Ask the tutor
//	@Description	Send a question plus the current analysis text to the tutoring service
//	@Tags			tutor
//	@Accept			json
//	@Produce		json
//	@Param			body	body		AskRequest	true	"Question and context"
//	@Success		200		{object}	AskResponse
//	@Failure		400		{object}	APIResponse
//	@Failure		401		{object}	APIResponse
//	@Failure		502		{object}	APIResponse
//	@Failure		503		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/ask [post]
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if s.tutor == nil || !s.tutor.Enabled() {
		sendError(w, "Tutoring is not configured", http.StatusServiceUnavailable)
		return
	}

	var req AskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		sendError(w, "Question is required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	answer, err := s.tutor.Ask(r.Context(), req.Question, req.Context)
	s.metrics.RecordTutorRequest(err == nil, time.Since(start))
	if err != nil {
		switch {
		case errors.Is(err, tutor.ErrNotConfigured):
			sendError(w, "Tutoring is not configured", http.StatusServiceUnavailable)
		case errors.Is(err, tutor.ErrEmptyQuestion):
			sendError(w, "Question is required", http.StatusBadRequest)
		default:
			s.logger.Warn("tutor request failed", "error", err)
			sendError(w, fmt.Sprintf("Tutor request failed: %v", err), http.StatusBadGateway)
		}
		return
	}

	sendSuccess(w, AskResponse{Answer: answer})
}

// handleCreateSnippet godoc
//
//	@Summary		Save a snippet
//	@Description	Store a sample input for later analysis
//	@Tags			snippets
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SnippetRequest	true	"Snippet"
//	@Success		201		{object}	storage.Snippet
//	@Failure		400		{object}	APIResponse
//	@Failure		401		{object}	APIResponse
//	@Failure		500		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/snippets [post]
func (s *Server) handleCreateSnippet(w http.ResponseWriter, r *http.Request) {
	var req SnippetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.checkInputLength(w, req.Text) {
		return
	}

	snippet, err := s.snippets.Create(req.Label, req.Text)
	s.metrics.RecordSnippetOperation("create", err == nil)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyText) {
			sendError(w, "Text is required", http.StatusBadRequest)
			return
		}
		s.logger.Error("failed to create snippet", "error", err)
		sendError(w, fmt.Sprintf("Failed to create snippet: %v", err), http.StatusInternalServerError)
		return
	}

	sendSuccessStatus(w, snippet, http.StatusCreated)
}

// handleListSnippets godoc
//
//	@Summary		List snippets
//	@Description	List saved sample inputs, newest first
//	@Tags			snippets
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum number of snippets"
//	@Success		200		{array}		storage.Snippet
//	@Failure		400		{object}	APIResponse
//	@Failure		500		{object}	APIResponse
//	@Router			/snippets [get]
func (s *Server) handleListSnippets(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			sendError(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = n
	}

	snippets, err := s.snippets.List(limit)
	s.metrics.RecordSnippetOperation("list", err == nil)
	if err != nil {
		s.logger.Error("failed to list snippets", "error", err)
		sendError(w, fmt.Sprintf("Failed to list snippets: %v", err), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, snippets)
}

// handleGetSnippet godoc
//
//	@Summary		Get a snippet
//	@Description	Get a saved input with its analysis recomputed
//	@Tags			snippets
//	@Produce		json
//	@Param			id	path		string	true	"Snippet ID"
//	@Success		200	{object}	SnippetResponse
//	@Failure		404	{object}	APIResponse
//	@Failure		500	{object}	APIResponse
//	@Router			/snippets/{id} [get]
func (s *Server) handleGetSnippet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	snippet, err := s.snippets.Read(id)
	s.metrics.RecordSnippetOperation("read", err == nil)
	if err != nil {
		if errors.Is(err, storage.ErrSnippetNotFound) {
			sendError(w, "Snippet not found", http.StatusNotFound)
			return
		}
		sendError(w, fmt.Sprintf("Failed to read snippet: %v", err), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, SnippetResponse{
		Snippet:  snippet,
		Analysis: s.engine.Summarize(snippet.Text),
	})
}

// handleDeleteSnippet godoc
//
//	@Summary		Delete a snippet
//	@Description	Remove a saved input
//	@Tags			snippets
//	@Produce		json
//	@Param			id	path		string	true	"Snippet ID"
//	@Success		200	{object}	map[string]string
//	@Failure		401	{object}	APIResponse
//	@Failure		404	{object}	APIResponse
//	@Failure		500	{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/snippets/{id} [delete]
func (s *Server) handleDeleteSnippet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.snippets.Delete(id)
	s.metrics.RecordSnippetOperation("delete", err == nil)
	if err != nil {
		if errors.Is(err, storage.ErrSnippetNotFound) {
			sendError(w, "Snippet not found", http.StatusNotFound)
			return
		}
		sendError(w, fmt.Sprintf("Failed to delete snippet: %v", err), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, map[string]string{"message": "Snippet deleted successfully"})
}

// requireSnippets answers 503 when no snippet store is configured
func (s *Server) requireSnippets(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.snippets == nil {
			sendError(w, "Snippet storage is not configured", http.StatusServiceUnavailable)
			return
		}
		next(w, r)
	}
}
