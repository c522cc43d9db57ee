// Package genai provides the model extraction capability against two
// interchangeable Gemini backends: the direct API (key-in-query auth) and
// Vertex AI (bearer token against a project/region/model endpoint).
// Callers hold only the Client interface, never a concrete backend.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Backend kinds selectable through Config.Backend.
const (
	BackendGemini = "gemini"
	BackendVertex = "vertex"
)

// Generation parameters are fixed for deterministic, schema-conformant
// output rather than creative variation.
const (
	temperature     = 0.2
	topK            = 40
	topP            = 0.8
	maxOutputTokens = 2048
)

// Defaults applied when Config leaves a field empty.
const (
	defaultModel    = "gemini-1.5-flash"
	defaultLocation = "asia-northeast1"
	defaultTimeout  = 60 * time.Second
)

// Client is the single model-extraction capability.
type Client interface {
	// Complete sends one prompt and returns the model's raw text output.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config selects and credentials a backend. It is an immutable snapshot
// for the lifetime of the built client; callers rebuild the client to
// pick up changed configuration.
type Config struct {
	Backend     string // BackendGemini or BackendVertex
	APIKey      string // direct Gemini API key
	AccessToken string // Vertex AI OAuth2 access token
	ProjectID   string // Vertex AI project
	Location    string // Vertex AI region, defaults to asia-northeast1
	Model       string // defaults to gemini-1.5-flash
}

// New builds the backend selected by cfg. Returns ErrNoCredentials when
// the selected backend has no usable credentials.
func New(cfg Config, opts ...Option) (Client, error) {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Location == "" {
		cfg.Location = defaultLocation
	}

	switch cfg.Backend {
	case BackendGemini:
		if cfg.APIKey == "" {
			return nil, ErrNoCredentials
		}
		return newGeminiClient(cfg, opts...), nil
	case BackendVertex:
		if cfg.AccessToken == "" || cfg.ProjectID == "" {
			return nil, ErrNoCredentials
		}
		return newVertexClient(cfg, opts...), nil
	default:
		return nil, ErrNoCredentials
	}
}

// Request and response bodies shared by both backends.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	CandidateCount  int     `json:"candidateCount,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// doGenerate performs one generateContent call and extracts the first
// candidate's text. Non-success statuses surface as *TransportError with
// the body captured verbatim; a success response without the expected
// text payload surfaces as ErrEmptyResponse.
func doGenerate(ctx context.Context, hc *http.Client, url string, headers map[string]string, req generateRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := hc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call model backend: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &TransportError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var gen generateResponse
	if err := json.Unmarshal(respBody, &gen); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(gen.Candidates) == 0 || len(gen.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return gen.Candidates[0].Content.Parts[0].Text, nil
}
