// Package service provides the extraction orchestrator: the public entry
// point that tries the model path and transparently falls back to the
// local pattern extractor on any failure.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/mizuki-io/yotei/internal/adapters/genai"
	"github.com/mizuki-io/yotei/internal/domain/dedupe"
	"github.com/mizuki-io/yotei/internal/domain/model"
	"github.com/mizuki-io/yotei/internal/extract/pattern"
	"github.com/mizuki-io/yotei/internal/extract/prompt"
	"github.com/mizuki-io/yotei/internal/extract/response"
	"github.com/mizuki-io/yotei/pkg/logger"
	"github.com/mizuki-io/yotei/pkg/metrics"
)

// defaultBatchDelay paces sequential batch calls against upstream limits.
const defaultBatchDelay = time.Second

// ExtractionContext carries optional per-call inputs. Now is the
// reference instant for relative dates and the prompt's current date;
// when zero the service's clock is used.
type ExtractionContext struct {
	Subject string
	From    string
	Now     time.Time
}

// Email is one message analyzed as a whole, subject and sender included.
type Email struct {
	Subject string
	From    string
	Body    string
	Date    string
}

// Service orchestrates extraction. Its extraction methods never fail:
// any model-path error is logged and answered with the pattern path's
// result, even when that result is empty.
type Service struct {
	client     genai.Client // nil runs pattern-only
	builder    *prompt.Builder
	extractor  *pattern.Extractor
	merger     dedupe.Merger
	limiter    *rate.Limiter
	batchDelay time.Duration
	now        func() time.Time
	logger     logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithClient sets the model extraction backend. Leaving it unset runs
// the engine pattern-only.
func WithClient(c genai.Client) Option {
	return func(s *Service) {
		s.client = c
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBatchDelay sets the pacing delay between batch extraction calls.
// Zero disables pacing entirely.
func WithBatchDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.batchDelay = d
		}
	}
}

// WithPatternOptions configures the fallback pattern extractor.
func WithPatternOptions(opts ...pattern.Option) Option {
	return func(s *Service) {
		s.extractor = pattern.New(opts...)
	}
}

// WithClock replaces the default clock, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		builder:    prompt.NewBuilder(),
		extractor:  pattern.New(),
		merger:     dedupe.NewInMemoryMerger(),
		batchDelay: defaultBatchDelay,
		now:        time.Now,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.limiter = rate.NewLimiter(rate.Every(s.batchDelay), 1)
	return s
}

// ExtractWithAI extracts candidate events from text, preferring the
// model path. It never returns an error; every failure falls back to
// the deterministic pattern extractor.
func (s *Service) ExtractWithAI(ctx context.Context, text string, ectx ExtractionContext) []model.Event {
	now := s.resolveNow(ectx.Now)

	if s.client == nil {
		s.logger.Debug(ctx, "no model backend configured; using pattern extraction")
		metrics.RecordPatternFallback()
		return s.patternExtract(text, ectx, now)
	}

	metrics.RecordModelExtraction()
	p := s.builder.Build(text, prompt.Context{Subject: ectx.Subject, From: ectx.From, Now: now})

	start := time.Now()
	raw, err := s.client.Complete(ctx, p)
	metrics.RecordModelLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		var transport *genai.TransportError
		switch {
		case errors.As(err, &transport):
			metrics.RecordTransportError()
			s.logger.Warn(ctx, "model backend failed; falling back to pattern extraction",
				logger.Int("status", transport.Status), logger.String("body", transport.Body))
		case errors.Is(err, genai.ErrEmptyResponse):
			s.logger.Warn(ctx, "model response missing candidate text; falling back to pattern extraction")
		default:
			s.logger.Warn(ctx, "model call failed; falling back to pattern extraction", logger.Error(err))
		}
		metrics.RecordPatternFallback()
		return s.patternExtract(text, ectx, now)
	}

	events, err := response.Parse(raw)
	if err != nil {
		metrics.RecordParseFailure()
		metrics.RecordPatternFallback()
		s.logger.Warn(ctx, "model response failed to parse; falling back to pattern extraction", logger.Error(err))
		return s.patternExtract(text, ectx, now)
	}

	metrics.RecordEventsExtracted(string(model.ProvenanceAI), len(events))
	return events
}

// ExtractPatternOnly runs the deterministic local path directly.
func (s *Service) ExtractPatternOnly(text string, ectx ExtractionContext) []model.Event {
	return s.patternExtract(text, ectx, s.resolveNow(ectx.Now))
}

// BatchExtract extracts from each text strictly in input order, pacing
// calls against upstream rate limits, and merges duplicates across the
// whole batch. A cancelled context stops pacing early and returns what
// has been accumulated so far.
func (s *Service) BatchExtract(ctx context.Context, texts []string) []model.Event {
	var all []model.Event
	totalBytes := 0

	for _, text := range texts {
		if err := s.limiter.Wait(ctx); err != nil {
			s.logger.Warn(ctx, "batch extraction interrupted", logger.Error(err))
			break
		}
		metrics.RecordBatchText()
		totalBytes += len(text)
		all = append(all, s.ExtractWithAI(ctx, text, ExtractionContext{})...)
	}

	metrics.UpdateLastBatchBytes(totalBytes)
	merged := s.merger.Merge(all)
	metrics.RecordDedupeDropped(len(all) - len(merged))
	return merged
}

// AnalyzeEmail extracts events from a whole email, feeding the subject
// and sender into both the composed text and the extraction context.
func (s *Service) AnalyzeEmail(ctx context.Context, email Email) []model.Event {
	fullText := fmt.Sprintf("件名: %s\n送信者: %s\n本文:\n%s", email.Subject, email.From, email.Body)
	return s.ExtractWithAI(ctx, fullText, ExtractionContext{
		Subject: email.Subject,
		From:    email.From,
	})
}

func (s *Service) patternExtract(text string, ectx ExtractionContext, now time.Time) []model.Event {
	events := s.extractor.Extract(text, pattern.Context{
		Subject: ectx.Subject,
		From:    ectx.From,
		Now:     now,
	})
	metrics.RecordEventsExtracted(string(model.ProvenancePattern), len(events))
	return events
}

func (s *Service) resolveNow(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}
