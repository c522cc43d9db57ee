package genai

import (
	"context"
	"fmt"
	"net/http"
)

// vertexClient calls Gemini through Vertex AI, authenticating with a
// bearer token against a project/region/model-qualified endpoint.
type vertexClient struct {
	accessToken string
	projectID   string
	location    string
	model       string
	baseURL     string // defaults to the regional aiplatform host
	httpClient  *http.Client
}

func newVertexClient(cfg Config, opts ...Option) *vertexClient {
	c := &vertexClient{
		accessToken: cfg.AccessToken,
		projectID:   cfg.ProjectID,
		location:    cfg.Location,
		model:       cfg.Model,
		baseURL:     fmt.Sprintf("https://%s-aiplatform.googleapis.com", cfg.Location),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	applyOptions(opts, &c.baseURL, &c.httpClient)
	return c
}

// Complete sends one prompt and returns the model's raw text output.
func (c *vertexClient) Complete(ctx context.Context, prompt string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1/projects/%s/locations/%s/publishers/google/models/%s:generateContent",
		c.baseURL, c.projectID, c.location, c.model)

	req := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			TopK:            topK,
			TopP:            topP,
			CandidateCount:  1,
			MaxOutputTokens: maxOutputTokens,
		},
	}

	headers := map[string]string{
		"Authorization": "Bearer " + c.accessToken,
	}
	return doGenerate(ctx, c.httpClient, endpoint, headers, req)
}
