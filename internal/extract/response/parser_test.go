package response_test

import (
	"testing"

	model "github.com/mizuki-io/yotei/internal/domain/model"
	response "github.com/mizuki-io/yotei/internal/extract/response"
	. "github.com/smartystreets/goconvey/convey"
)

const fullBody = `{
  "events": [
    {
      "title": "プロジェクト定例",
      "date": "2024年5月11日",
      "startTime": "14:00",
      "endTime": "15:00",
      "location": "会議室A",
      "meetingUrl": "https://zoom.us/j/123",
      "attendees": ["tanaka@example.com", "sato@example.com"],
      "description": "週次の進捗確認",
      "importance": "high",
      "confidence": 0.95
    }
  ],
  "summary": "1件の定例会議"
}`

func TestParse(t *testing.T) {
	Convey("Given a well-formed model response", t, func() {
		Convey("When parsing the unfenced body", func() {
			events, err := response.Parse(fullBody)

			Convey("Then one fully-populated event is returned", func() {
				So(err, ShouldBeNil)
				So(events, ShouldHaveLength, 1)
				e := events[0]
				So(e.Title, ShouldEqual, "プロジェクト定例")
				So(e.Date, ShouldEqual, "2024年5月11日")
				So(e.StartTime, ShouldEqual, "14:00")
				So(e.EndTime, ShouldEqual, "15:00")
				So(e.Location, ShouldEqual, "会議室A")
				So(e.MeetingURL, ShouldEqual, "https://zoom.us/j/123")
				So(e.Attendees, ShouldResemble, []string{"tanaka@example.com", "sato@example.com"})
				So(e.Importance, ShouldEqual, model.ImportanceHigh)
				So(e.Confidence, ShouldEqual, 0.95)
				So(e.ExtractedBy, ShouldEqual, model.ProvenanceAI)
				So(e.ID, ShouldStartWith, "ai_")
			})

			Convey("And the call-scoped summary is carried on the event", func() {
				So(events[0].Summary, ShouldEqual, "1件の定例会議")
			})
		})

		Convey("When the same body is wrapped in a json fence", func() {
			fenced := "```json\n" + fullBody + "\n```"
			fencedEvents, err := response.Parse(fenced)
			So(err, ShouldBeNil)

			plainEvents, err := response.Parse(fullBody)
			So(err, ShouldBeNil)

			Convey("Then both forms parse to the same events", func() {
				So(fencedEvents, ShouldHaveLength, len(plainEvents))
				// IDs are freshly generated; compare the payload fields.
				fencedEvents[0].ID = ""
				plainEvents[0].ID = ""
				So(fencedEvents[0], ShouldResemble, plainEvents[0])
			})
		})

		Convey("When the fence has no language marker", func() {
			events, err := response.Parse("```\n" + fullBody + "\n```")
			So(err, ShouldBeNil)
			So(events, ShouldHaveLength, 1)
		})

		Convey("When prose surrounds the fenced block", func() {
			events, err := response.Parse("以下が抽出結果です。\n```json\n" + fullBody + "\n```\n以上です。")
			So(err, ShouldBeNil)
			So(events, ShouldHaveLength, 1)
		})
	})

	Convey("Given sparse model output", t, func() {
		Convey("When fields are null or absent", func() {
			events, err := response.Parse(`{"events":[{"date":"2024年5月11日","title":null}],"summary":""}`)

			Convey("Then defaults are applied", func() {
				So(err, ShouldBeNil)
				So(events, ShouldHaveLength, 1)
				So(events[0].Title, ShouldEqual, model.DefaultTitle)
				So(events[0].Importance, ShouldEqual, model.ImportanceMedium)
				So(events[0].Confidence, ShouldEqual, 0.5)
				So(events[0].Attendees, ShouldResemble, []string{})
			})
		})

		Convey("When confidence is out of range", func() {
			events, err := response.Parse(`{"events":[{"confidence":1.7}],"summary":""}`)
			So(err, ShouldBeNil)
			So(events[0].Confidence, ShouldEqual, 1.0)
		})

		Convey("When the events array is empty", func() {
			events, err := response.Parse(`{"events":[],"summary":"予定なし"}`)

			Convey("Then an empty list is a valid result, not an error", func() {
				So(err, ShouldBeNil)
				So(events, ShouldBeEmpty)
			})
		})
	})

	Convey("Given malformed model output", t, func() {
		Convey("When the text is not JSON at all", func() {
			events, err := response.Parse("not json")

			Convey("Then parsing fails with ErrInvalidJSON", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, response.ErrInvalidJSON)
				So(events, ShouldBeEmpty)
			})
		})

		Convey("When the events field is missing", func() {
			_, err := response.Parse(`{"summary":"s"}`)
			So(err, ShouldWrap, response.ErrMissingEvents)
		})

		Convey("When the events field has the wrong type", func() {
			_, err := response.Parse(`{"events":"nope","summary":"s"}`)
			So(err, ShouldWrap, response.ErrInvalidJSON)
		})

		Convey("When a fence opens but never closes", func() {
			_, err := response.Parse("```json\n{\"events\":")
			So(err, ShouldNotBeNil)
		})
	})
}
