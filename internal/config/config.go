// Package config defines engine configuration structures and loading hooks.
//
// Conventions:
// - Provide New() defaults and Load(ctx) for layered loading.
// - The loaded Config is an immutable snapshot; the engine never reads
//   ambient process state mid-call. Callers reload and rebuild to pick up
//   changed credentials.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Backend selects the model backend: "gemini", "vertex", or empty to
	// run pattern-only.
	Backend string `koanf:"backend"`

	// GeminiAPIKey authenticates the direct Gemini backend.
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// AccessToken authenticates the Vertex AI backend.
	AccessToken string `koanf:"access_token"`

	// ProjectID and Location qualify the Vertex AI endpoint.
	ProjectID string `koanf:"project_id"`
	Location  string `koanf:"location"`

	// Model names the Gemini model used by either backend.
	Model string `koanf:"model"`

	// BatchDelayMS paces sequential batch extraction calls.
	BatchDelayMS int `koanf:"batch_delay_ms"`

	// ContextRadius is the half-width in characters of the pattern
	// extractor's context window.
	ContextRadius int `koanf:"context_radius"`

	// PatternConfidence is the fixed score for pattern-matched candidates.
	PatternConfidence float64 `koanf:"pattern_confidence"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Backend:           "",
		Location:          "asia-northeast1",
		Model:             "gemini-1.5-flash",
		BatchDelayMS:      1000,
		ContextRadius:     200,
		PatternConfidence: 0.3,
	}
}
