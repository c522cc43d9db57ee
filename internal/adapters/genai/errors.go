package genai

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrNoCredentials means no backend is configured with usable credentials.
	ErrNoCredentials = errors.New("no model backend credentials configured")
	// ErrEmptyResponse means the backend returned success without the
	// expected first-candidate text payload.
	ErrEmptyResponse = errors.New("model response missing candidate text")
)

// TransportError is a non-success backend status with its body captured
// verbatim.
type TransportError struct {
	Status int
	Body   string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("model backend error: status %d - %s", e.Status, e.Body)
}
