// Package tutor sends free-text questions about character encodings to a
// remote text-generation service and returns the reply verbatim.
package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-1.5-flash"
	DefaultTimeout  = 30 * time.Second

	maxResponseBytes = 1 << 20
)

var (
	// ErrNotConfigured is returned by the client built without an API key
	ErrNotConfigured = errors.New("tutor is not configured")

	// ErrEmptyQuestion is returned when the question is blank
	ErrEmptyQuestion = errors.New("question is required")

	// ErrEmptyAnswer is returned when the service replies without any text
	ErrEmptyAnswer = errors.New("tutor returned an empty answer")
)

// Asker answers a question given a short context string
type Asker interface {
	Ask(ctx context.Context, question, analysisContext string) (string, error)
	Enabled() bool
}

// Config holds the settings for the remote service
type Config struct {
	Endpoint string
	Model    string
	APIKey   string
	Timeout  time.Duration
}

// NewClient returns a client for cfg. Without an API key the returned
// client is disabled and every Ask fails with ErrNotConfigured.
func NewClient(cfg Config, httpClient *http.Client) Asker {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return disabledClient{}
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &generativeClient{cfg: cfg, http: httpClient}
}

type disabledClient struct{}

func (disabledClient) Ask(context.Context, string, string) (string, error) {
	return "", ErrNotConfigured
}

func (disabledClient) Enabled() bool { return false }

type generativeClient struct {
	cfg  Config
	http *http.Client
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
	Contents          []content `json:"contents"`
}

func (c *generativeClient) Enabled() bool { return true }

// Ask posts the question and context and returns the first candidate's text
func (c *generativeClient) Ask(ctx context.Context, question, analysisContext string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}

	body, err := json.Marshal(generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemPrompt}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: BuildPrompt(question, analysisContext)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	ctx, cancel := contextWithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.cfg.Endpoint, "/"), c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("tutor request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read tutor response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(raw, "error.message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("tutor returned status %d: %s", resp.StatusCode, msg)
	}

	var sb strings.Builder
	gjson.GetBytes(raw, "candidates.0.content.parts.#.text").ForEach(func(_, value gjson.Result) bool {
		sb.WriteString(value.String())
		return true
	})
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyAnswer
	}
	return sb.String(), nil
}
