package response

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrInvalidJSON means the raw text did not decode as a JSON document.
	ErrInvalidJSON = errors.New("invalid json in model response")
	// ErrMissingEvents means the document lacks the required events array.
	ErrMissingEvents = errors.New("model response missing events array")
)
