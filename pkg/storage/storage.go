// Package storage keeps saved sample inputs in a pebble database keyed by KSUID.
// Only the input text is stored; analyses are always recomputed.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

var (
	// ErrSnippetNotFound is returned when no snippet has the requested ID
	ErrSnippetNotFound = errors.New("snippet not found")

	// ErrEmptyText is returned when a snippet would have no text
	ErrEmptyText = errors.New("snippet text is required")
)

// Snippet is a saved input string
type Snippet struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultSnippets seed an empty store with the classroom samples
var DefaultSnippets = []Snippet{
	{Label: "Hiragana", Text: "あ"},
	{Label: "ASCII", Text: "Hello"},
	{Label: "Emoji", Text: "🚀"},
	{Label: "Half-width katakana", Text: "ｱｲｳ"},
	{Label: "Mojibake", Text: "文字化け"},
}

// SnippetStore is a pebble-backed snippet store
type SnippetStore struct {
	db *pebble.DB
}

// NewSnippetStore opens or creates the database at path
func NewSnippetStore(path string) (*SnippetStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open snippet store: %w", err)
	}
	return &SnippetStore{db: db}, nil
}

// Create stores a new snippet and returns it with its ID
func (s *SnippetStore) Create(label, text string) (*Snippet, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	id := ksuid.New()
	snippet := &Snippet{
		ID:        id.String(),
		Label:     strings.TrimSpace(label),
		Text:      text,
		CreatedAt: id.Time().UTC(),
	}

	data, err := json.Marshal(snippet)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snippet: %w", err)
	}
	if err := s.db.Set(id.Bytes(), data, pebble.Sync); err != nil {
		return nil, fmt.Errorf("failed to write snippet: %w", err)
	}

	return snippet, nil
}

// Read returns the snippet with the given ID
func (s *SnippetStore) Read(id string) (*Snippet, error) {
	key, err := ksuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", ErrSnippetNotFound, id)
	}

	data, closer, err := s.db.Get(key.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrSnippetNotFound
		}
		return nil, fmt.Errorf("failed to read snippet: %w", err)
	}
	defer closer.Close()

	var snippet Snippet
	if err := json.Unmarshal(data, &snippet); err != nil {
		return nil, fmt.Errorf("failed to decode snippet: %w", err)
	}
	return &snippet, nil
}

// List returns up to limit snippets in reverse KSUID order, which is newest
// first at one-second resolution. A limit <= 0 returns all.
func (s *SnippetStore) List(limit int) ([]*Snippet, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate snippets: %w", err)
	}
	defer iter.Close()

	snippets := make([]*Snippet, 0)
	for valid := iter.Last(); valid; valid = iter.Prev() {
		var snippet Snippet
		if err := json.Unmarshal(iter.Value(), &snippet); err != nil {
			return nil, fmt.Errorf("failed to decode snippet %x: %w", iter.Key(), err)
		}
		snippets = append(snippets, &snippet)
		if limit > 0 && len(snippets) >= limit {
			break
		}
	}

	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate snippets: %w", err)
	}
	return snippets, nil
}

// Delete removes a snippet. Deleting a missing snippet is not an error.
func (s *SnippetStore) Delete(id string) error {
	key, err := ksuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid id %q", ErrSnippetNotFound, id)
	}
	if err := s.db.Delete(key.Bytes(), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete snippet: %w", err)
	}
	return nil
}

// Seed inserts DefaultSnippets when the store is empty and reports how many were added
func (s *SnippetStore) Seed() (int, error) {
	existing, err := s.List(1)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for _, snippet := range DefaultSnippets {
		if _, err := s.Create(snippet.Label, snippet.Text); err != nil {
			return 0, fmt.Errorf("failed to seed snippet %q: %w", snippet.Label, err)
		}
	}
	return len(DefaultSnippets), nil
}

// Close closes the underlying database
func (s *SnippetStore) Close() error {
	return s.db.Close()
}
