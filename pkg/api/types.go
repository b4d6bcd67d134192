package api

import (
	"log/slog"

	"github.com/ssargent/mojilens/pkg/analyzer"
	"github.com/ssargent/mojilens/pkg/codec"
	"github.com/ssargent/mojilens/pkg/storage"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// TextRequest carries the input string for analyze and mojibake
type TextRequest struct {
	Text string `json:"text"`
}

// DecodeRequest carries bytes, as hex or binary groups, and the encoding to read them with
type DecodeRequest struct {
	Hex      string `json:"hex,omitempty"`
	Binary   string `json:"binary,omitempty"`
	Encoding string `json:"encoding"`
}

// DecodeResponse is the parsed bytes and what they read as
type DecodeResponse struct {
	Bytes  codec.ByteView   `json:"bytes"`
	Result analyzer.Misread `json:"result"`
}

// AskRequest is a question for the tutor along with the current analysis text
type AskRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

// AskResponse holds the tutor's reply verbatim
type AskResponse struct {
	Answer string `json:"answer"`
}

// SnippetRequest creates a saved sample input
type SnippetRequest struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// SnippetResponse is a stored snippet with its analysis recomputed
type SnippetResponse struct {
	*storage.Snippet
	Analysis analyzer.Analysis `json:"analysis"`
}

// HealthResponse reports which optional capabilities are loaded
type HealthResponse struct {
	Status   string `json:"status"`
	Legacy   string `json:"legacy_codec"`
	Tutor    string `json:"tutor"`
	Snippets string `json:"snippets"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port          int
	Bind          string
	APIKey        string // Client key required on write routes; empty disables the check
	MaxInputChars int    // Per-request character limit; <= 0 means unlimited
	Logger        *slog.Logger
}
