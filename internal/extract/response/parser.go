// Package response parses raw model output into candidate events.
package response

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mizuki-io/yotei/internal/domain/model"
)

// defaultConfidence is assumed when the model omits a confidence score.
const defaultConfidence = 0.5

// wireEvent mirrors one element of the model's events array. Pointers
// distinguish null/absent fields from empty values.
type wireEvent struct {
	Title       *string  `json:"title"`
	Date        *string  `json:"date"`
	StartTime   *string  `json:"startTime"`
	EndTime     *string  `json:"endTime"`
	Location    *string  `json:"location"`
	MeetingURL  *string  `json:"meetingUrl"`
	Attendees   []string `json:"attendees"`
	Description *string  `json:"description"`
	Importance  *string  `json:"importance"`
	Confidence  *float64 `json:"confidence"`
}

// wireResponse mirrors the fixed output schema the prompt mandates.
// Events is a pointer so a missing array can be told apart from an empty one.
type wireResponse struct {
	Events  *[]wireEvent `json:"events"`
	Summary string       `json:"summary"`
}

// Parse validates raw model text and maps it into candidate events.
// Fenced code blocks around the JSON are tolerated. A returned error is
// the explicit failure variant the orchestrator branches on to fall back;
// parsing never panics.
func Parse(raw string) ([]model.Event, error) {
	body := stripFences(raw)

	var resp wireResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if resp.Events == nil {
		return nil, ErrMissingEvents
	}

	events := make([]model.Event, 0, len(*resp.Events))
	for _, w := range *resp.Events {
		events = append(events, mapEvent(w, resp.Summary))
	}
	return events, nil
}

// mapEvent applies per-field defaults and provenance to one wire event.
// The call-scoped summary is carried on each record since there is no
// separate batch-result entity.
func mapEvent(w wireEvent, summary string) model.Event {
	confidence := defaultConfidence
	if w.Confidence != nil {
		confidence = model.ClampConfidence(*w.Confidence)
	}

	importance := model.ImportanceMedium
	if w.Importance != nil {
		importance = model.NormalizeImportance(*w.Importance)
	}

	title := deref(w.Title)
	if title == "" {
		title = model.DefaultTitle
	}

	attendees := w.Attendees
	if attendees == nil {
		attendees = []string{}
	}

	return model.Event{
		ID:          model.NewID(model.ProvenanceAI),
		Title:       title,
		Date:        deref(w.Date),
		StartTime:   deref(w.StartTime),
		EndTime:     deref(w.EndTime),
		Location:    deref(w.Location),
		MeetingURL:  deref(w.MeetingURL),
		Attendees:   attendees,
		Description: model.TruncateSnippet(deref(w.Description)),
		Importance:  importance,
		Confidence:  confidence,
		ExtractedBy: model.ProvenanceAI,
		Summary:     summary,
	}
}

// stripFences extracts the content of a fenced code block when present.
// A ```json fence wins over a bare fence; unfenced text passes through.
func stripFences(raw string) string {
	if _, after, found := strings.Cut(raw, "```json"); found {
		if body, _, _ := strings.Cut(after, "```"); body != "" {
			return strings.TrimSpace(body)
		}
		return ""
	}
	if _, after, found := strings.Cut(raw, "```"); found {
		body, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(raw)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
