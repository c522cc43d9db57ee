package pattern

import (
	"time"
	"unicode/utf8"

	"github.com/mizuki-io/yotei/internal/domain/model"
	"github.com/mizuki-io/yotei/internal/domain/reldate"
)

// Default extraction configuration constants.
const (
	// defaultRadius is the context-window half-width in characters around
	// each date occurrence; sub-extraction never looks outside the window.
	defaultRadius = 200
	// defaultConfidence is the fixed score for pure pattern candidates.
	// Kept low so any model-derived candidate outranks them in dedup.
	defaultConfidence = 0.3
)

// Context carries per-call extraction inputs. Now is the reference instant
// for relative date resolution; the extractor never reads the wall clock.
type Context struct {
	Subject string
	From    string
	Now     time.Time
}

// Extractor produces candidate events from raw text without any network
// dependency. Extract returns an empty list on no matches, never an error.
type Extractor struct {
	radius     int
	confidence float64
}

// New constructs an Extractor with default configuration.
func New(opts ...Option) *Extractor {
	x := &Extractor{
		radius:     defaultRadius,
		confidence: defaultConfidence,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// occurrence is one date match found in the text.
type occurrence struct {
	kind    DateKind
	date    string // captured date text
	time    string // time written next to the date, may be empty
	byteOff int    // match offset into the scanned text
}

// Extract scans text for every date occurrence and emits one candidate
// event per occurrence, with sub-extraction scoped to a fixed-radius
// window around the match.
func (x *Extractor) Extract(text string, ectx Context) []model.Event {
	events := make([]model.Event, 0)
	if text == "" {
		return events
	}

	occurrences := findDates(text)
	seen := make(map[string]struct{}, len(occurrences))

	for _, occ := range occurrences {
		window := clipWindow(text, occ.byteOff, x.radius)

		startTime := normalizeTime(occ.time)
		endTime := ""
		if s, e, ok := findTimeRange(window); ok {
			// A range in the window overrides the date-adjacent time.
			startTime, endTime = s, e
		}

		location, _ := firstGroup(locationRules, window)
		meetingURL, hasURL := firstMatch(meetingURLRules, window)
		if hasURL && location == "" {
			location = model.OnlineMeetingLocation
		}

		title, ok := firstGroup(titleRules, window)
		if !ok {
			title = ectx.Subject
		}
		if title == "" {
			title = model.DefaultTitle
		}

		date := occ.date
		if occ.kind == KindRelative {
			if abs, ok := reldate.Resolve(occ.date, ectx.Now); ok {
				date = reldate.Format(abs)
			}
			// Unrecognized tokens pass through as the raw text.
		}

		// Per-call dedup on (date, startTime); the first occurrence wins.
		key := date + "\x00" + startTime
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		events = append(events, model.Event{
			ID:          model.NewID(model.ProvenancePattern),
			Title:       title,
			Date:        date,
			StartTime:   startTime,
			EndTime:     endTime,
			Location:    location,
			MeetingURL:  meetingURL,
			Attendees:   []string{},
			Importance:  model.ImportanceMedium,
			Confidence:  x.confidence,
			ExtractedBy: model.ProvenancePattern,
			Context:     model.TruncateSnippet(window),
		})
	}

	return events
}

// findDates collects every occurrence of every date family, family by
// family in declaration order, positions ascending within a family.
func findDates(text string) []occurrence {
	var found []occurrence
	for _, rule := range dateRules {
		for _, m := range rule.re.FindAllStringSubmatchIndex(text, -1) {
			occ := occurrence{
				kind:    rule.kind,
				byteOff: m[0],
			}
			if m[2] >= 0 {
				occ.date = text[m[2]:m[3]]
			}
			if len(m) > 4 && m[4] >= 0 {
				occ.time = text[m[4]:m[5]]
			}
			found = append(found, occ)
		}
	}
	return found
}

// findTimeRange probes the range rules in order and returns normalized
// 24-hour start and end times from the first rule that matches.
func findTimeRange(window string) (string, string, bool) {
	for i, re := range timeRangeRules {
		m := re.FindStringSubmatch(window)
		if m == nil {
			continue
		}
		if i == len(timeRangeRules)-1 {
			// Hour-only Japanese range: groups are bare hours.
			return normalizeHour(m[1]), normalizeHour(m[2]), true
		}
		return normalizeTime(m[1]), normalizeTime(m[2]), true
	}
	return "", "", false
}

// clipWindow slices the ±radius character window around a byte offset,
// clipped to the text bounds.
func clipWindow(text string, byteOff, radius int) string {
	runes := []rune(text)
	center := utf8.RuneCountInString(text[:byteOff])

	start := center - radius
	if start < 0 {
		start = 0
	}
	end := center + radius
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}
