// Package dedupe merges candidate events that describe the same occasion.
package dedupe

// Option applies a configuration option to the in-memory Merger.
type Option func(*inMemoryMerger)

// WithCapacityHint pre-sizes the merge map for an expected batch size.
func WithCapacityHint(n int) Option {
	return func(m *inMemoryMerger) {
		if n > 0 {
			m.capacityHint = n
		}
	}
}
