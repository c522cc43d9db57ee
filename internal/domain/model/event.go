// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Importance classifies how urgent a candidate event looks.
type Importance string

// Importance levels.
const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// NormalizeImportance maps arbitrary model output onto a known level.
// Anything unrecognized becomes medium.
func NormalizeImportance(s string) Importance {
	switch Importance(strings.ToLower(strings.TrimSpace(s))) {
	case ImportanceHigh:
		return ImportanceHigh
	case ImportanceLow:
		return ImportanceLow
	default:
		return ImportanceMedium
	}
}

// Provenance marks which extraction path produced a candidate.
type Provenance string

const (
	// ProvenanceAI marks candidates produced by the model path.
	ProvenanceAI Provenance = "ai"
	// ProvenancePattern marks candidates produced by the local pattern path.
	ProvenancePattern Provenance = "pattern"
)

// DefaultTitle is used when no title could be recovered from the text.
const DefaultTitle = "予定"

// OnlineMeetingLocation is set when only a conferencing URL was found.
const OnlineMeetingLocation = "オンライン会議"

// snippetLimit caps description and context snippets carried on an event.
const snippetLimit = 500

// Event is one structured, confidence-scored guess at a real-world event.
// Instances are created once per extraction and never mutated afterwards;
// dedup supersedes rather than edits them.
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Date        string     `json:"date"` // YYYY年MM月DD日, or a raw relative token when unresolvable
	StartTime   string     `json:"startTime,omitempty"`
	EndTime     string     `json:"endTime,omitempty"`
	Location    string     `json:"location,omitempty"`
	MeetingURL  string     `json:"meetingUrl,omitempty"`
	Attendees   []string   `json:"attendees"`
	Description string     `json:"description,omitempty"`
	Importance  Importance `json:"importance"`
	Confidence  float64    `json:"confidence"`
	ExtractedBy Provenance `json:"extractedBy"`
	Summary     string     `json:"summary,omitempty"`
	Context     string     `json:"context,omitempty"`
}

// NewID generates an opaque event ID carrying the provenance prefix.
func NewID(p Provenance) string {
	return fmt.Sprintf("%s_%s", p, uuid.NewString())
}

// Key returns the dedup key tuple (date, startTime, title) in encoded form.
func (e Event) Key() string {
	return e.Date + "\x00" + e.StartTime + "\x00" + e.Title
}

var jpDateRe = regexp.MustCompile(`^(\d{4})年(\d{1,2})月(\d{1,2})日$`)

// ISODate converts the canonical Japanese date form to YYYY-MM-DD.
// Returns false when the date is missing or still a relative token.
func (e Event) ISODate() (string, bool) {
	m := jpDateRe.FindStringSubmatch(e.Date)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("%s-%s-%s", m[1], pad2(m[2]), pad2(m[3])), true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// ClampConfidence forces a confidence value into [0,1].
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// TruncateSnippet bounds free text carried on an event for user verification.
func TruncateSnippet(s string) string {
	r := []rune(s)
	if len(r) <= snippetLimit {
		return s
	}
	return string(r[:snippetLimit])
}

// Best returns the highest-confidence event from the list.
// Earlier entries win exact ties. Returns false on an empty list.
func Best(events []Event) (Event, bool) {
	if len(events) == 0 {
		return Event{}, false
	}
	best := events[0]
	for _, e := range events[1:] {
		if e.Confidence > best.Confidence {
			best = e
		}
	}
	return best, true
}
