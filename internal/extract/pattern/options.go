package pattern

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithRadius sets the context-window half-width in characters.
func WithRadius(radius int) Option {
	return func(x *Extractor) {
		if radius > 0 {
			x.radius = radius
		}
	}
}

// WithConfidence overrides the fixed confidence assigned to pattern
// candidates. Useful when pattern output feeds a UI signal rather than a
// final decision; the default stays deliberately low.
func WithConfidence(c float64) Option {
	return func(x *Extractor) {
		if c > 0 && c <= 1 {
			x.confidence = c
		}
	}
}
