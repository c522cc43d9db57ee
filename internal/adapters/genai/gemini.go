package genai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// defaultGeminiBaseURL is the direct Gemini API host.
const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// geminiClient calls the direct Gemini API, authenticating with an API
// key passed as a query parameter.
type geminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func newGeminiClient(cfg Config, opts ...Option) *geminiClient {
	c := &geminiClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: defaultGeminiBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	applyOptions(opts, &c.baseURL, &c.httpClient)
	return c
}

// Complete sends one prompt and returns the model's raw text output.
func (c *geminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	req := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			TopK:            topK,
			TopP:            topP,
			MaxOutputTokens: maxOutputTokens,
		},
	}

	return doGenerate(ctx, c.httpClient, endpoint, nil, req)
}
