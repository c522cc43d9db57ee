// Command yotei reads free text on stdin and prints extracted candidate
// events as JSON. It is a thin demonstration of the engine's public
// surface; it owns no file format of its own.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mizuki-io/yotei/internal/adapters/genai"
	app "github.com/mizuki-io/yotei/internal/app"
	"github.com/mizuki-io/yotei/internal/config"
	"github.com/mizuki-io/yotei/internal/extract/pattern"
	"github.com/mizuki-io/yotei/pkg/logger"
)

func main() {
	// Optional .env for local runs; absence is not an error.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	opts := []app.Option{
		app.WithLogger(log),
		app.WithBatchDelay(time.Duration(cfg.BatchDelayMS) * time.Millisecond),
		app.WithPatternOptions(
			pattern.WithRadius(cfg.ContextRadius),
			pattern.WithConfidence(cfg.PatternConfidence),
		),
	}

	client, err := genai.New(genai.Config{
		Backend:     cfg.Backend,
		APIKey:      cfg.GeminiAPIKey,
		AccessToken: cfg.AccessToken,
		ProjectID:   cfg.ProjectID,
		Location:    cfg.Location,
		Model:       cfg.Model,
	})
	switch {
	case err == nil:
		log.Info(ctx, "model backend configured", logger.String("backend", cfg.Backend), logger.String("model", cfg.Model))
		opts = append(opts, app.WithClient(client))
	case errors.Is(err, genai.ErrNoCredentials):
		log.Info(ctx, "no model backend configured; running pattern-only")
	default:
		log.Warn(ctx, "model backend unavailable; running pattern-only", logger.Error(err))
	}

	svc := app.New(opts...)

	text, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Error(ctx, "failed to read stdin", logger.Error(err))
		return
	}

	events := svc.ExtractWithAI(ctx, string(text), app.ExtractionContext{})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(events); err != nil {
		log.Error(ctx, "failed to encode events", logger.Error(err))
	}
}
