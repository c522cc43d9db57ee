package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if YOTEI_CONFIG is set
//  3. env (prefix YOTEI_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("YOTEI_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: YOTEI_BACKEND, YOTEI_GEMINI_API_KEY, ...
	// Map env keys like YOTEI_BATCH_DELAY_MS -> batch_delay_ms (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("YOTEI_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "yotei_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Backend {
	case "", "gemini", "vertex":
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, cfg.Backend)
	}
	if cfg.BatchDelayMS < 0 {
		return fmt.Errorf("%w: batch_delay_ms must not be negative", ErrInvalidConfig)
	}
	if cfg.ContextRadius <= 0 {
		return fmt.Errorf("%w: context_radius must be positive", ErrInvalidConfig)
	}
	if cfg.PatternConfidence <= 0 || cfg.PatternConfidence > 1 {
		return fmt.Errorf("%w: pattern_confidence must be in (0,1]", ErrInvalidConfig)
	}
	return nil
}
