// Package dedupe merges candidate events that describe the same occasion.
package dedupe

import (
	"github.com/mizuki-io/yotei/internal/domain/model"
)

// Merger collapses duplicate candidate events across extraction passes.
type Merger interface {
	// Merge returns events with duplicates removed. Two events are
	// duplicates when they share the (date, startTime, title) key; the
	// higher-confidence one is kept, first-seen winning exact ties.
	// Output preserves the first-appearance order of each retained key.
	Merge(events []model.Event) []model.Event
}

// inMemoryMerger implements Merger with a map keyed by the dedup tuple.
type inMemoryMerger struct {
	capacityHint int
}

// NewInMemoryMerger creates a Merger with configuration options.
func NewInMemoryMerger(opts ...Option) Merger {
	m := &inMemoryMerger{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *inMemoryMerger) Merge(events []model.Event) []model.Event {
	hint := m.capacityHint
	if hint <= 0 {
		hint = len(events)
	}
	// slot of each retained key in the output, in first-appearance order
	index := make(map[string]int, hint)
	out := make([]model.Event, 0, hint)

	for _, e := range events {
		key := e.Key()
		at, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, e)
			continue
		}
		// Strictly greater: exact ties keep the first-seen entry.
		if e.Confidence > out[at].Confidence {
			out[at] = e
		}
	}
	return out
}
