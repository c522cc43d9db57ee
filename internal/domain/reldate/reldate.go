// Package reldate resolves relative date tokens against a reference instant.
package reldate

import (
	"fmt"
	"time"
)

// offsets maps recognized relative tokens to day offsets from the reference.
// Unknown tokens are not resolved; callers keep the raw token instead.
var offsets = map[string]int{
	"今日":  0,
	"本日":  0,
	"明日":  1,
	"明後日": 2,
}

// Resolve turns a relative token into an absolute date relative to ref.
// Returns false for unrecognized tokens. Never reads the wall clock.
func Resolve(token string, ref time.Time) (time.Time, bool) {
	d, ok := offsets[token]
	if !ok {
		return time.Time{}, false
	}
	return ref.AddDate(0, 0, d), true
}

// Known reports whether token is a recognized relative date word.
func Known(token string) bool {
	_, ok := offsets[token]
	return ok
}

// Format renders t in the canonical Japanese form, without zero padding.
func Format(t time.Time) string {
	return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
}
