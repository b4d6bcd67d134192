// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"github.com/ssargent/mojilens/pkg/analyzer"
	"github.com/ssargent/mojilens/pkg/charset"
	"github.com/ssargent/mojilens/pkg/storage"
	"github.com/ssargent/mojilens/pkg/tutor"
)

// Engine is the encoding analysis surface the handlers call
type Engine interface {
	Summarize(text string) analyzer.Analysis
	Mojibake(text string) analyzer.MojibakeReport
	SimulateMisread(b []byte, decodeAs charset.EncodingKind) analyzer.Misread
	LegacyAvailable() bool
	LegacyKind() charset.EncodingKind
}

// SnippetStore defines the saved-input operations the API exposes
type SnippetStore interface {
	Create(label, text string) (*storage.Snippet, error)
	Read(id string) (*storage.Snippet, error)
	List(limit int) ([]*storage.Snippet, error)
	Delete(id string) error
}

// Dependencies are the collaborators a server is built from. Tutor and
// Snippets may be nil; their routes then answer 503.
type Dependencies struct {
	Engine   Engine
	Tutor    tutor.Asker
	Snippets SnippetStore
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves until ctx is cancelled
	StartServer(ctx context.Context, deps Dependencies, config ServerConfig) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
