package genai

import (
	"net/http"
)

// Option applies a configuration option to a backend client.
type Option func(*settings)

// settings collects option values shared by both backends.
type settings struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL overrides the backend host, including scheme.
// Used by tests to point at a local server.
func WithBaseURL(base string) Option {
	return func(s *settings) {
		if base != "" {
			s.baseURL = base
		}
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) {
		if hc != nil {
			s.httpClient = hc
		}
	}
}

// applyOptions runs opts against the given defaults in place.
func applyOptions(opts []Option, baseURL *string, hc **http.Client) {
	s := settings{baseURL: *baseURL, httpClient: *hc}
	for _, opt := range opts {
		opt(&s)
	}
	*baseURL = s.baseURL
	*hc = s.httpClient
}
