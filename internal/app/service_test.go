package service_test

import (
	"context"
	"testing"
	"time"

	app "github.com/mizuki-io/yotei/internal/app"
	"github.com/mizuki-io/yotei/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// stubClient fakes the model backend with canned responses.
type stubClient struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (s *stubClient) Complete(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	i := s.calls - 1
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

var ref = time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)

const aiResponse = "```json\n" +
	`{"events":[{"title":"会議","date":"2024年5月11日","startTime":"14:00","confidence":0.9}],"summary":"1件"}` +
	"\n```"

func TestExtractWithAI(t *testing.T) {
	Convey("Given a service with a working model backend", t, func() {
		stub := &stubClient{responses: []string{aiResponse}}
		svc := app.New(app.WithClient(stub), app.WithClock(func() time.Time { return ref }))

		Convey("When extracting", func() {
			events := svc.ExtractWithAI(context.Background(), "明日14時から会議", app.ExtractionContext{})

			Convey("Then the model-path events are returned", func() {
				So(events, ShouldHaveLength, 1)
				So(events[0].Title, ShouldEqual, "会議")
				So(events[0].ExtractedBy, ShouldEqual, model.ProvenanceAI)
				So(events[0].Confidence, ShouldEqual, 0.9)
			})

			Convey("And the prompt carried the reference date and text", func() {
				So(stub.calls, ShouldEqual, 1)
				So(stub.prompts[0], ShouldContainSubstring, "2024年5月10日")
				So(stub.prompts[0], ShouldContainSubstring, "明日14時から会議")
			})
		})
	})

	Convey("Given a service whose backend returns unparseable output", t, func() {
		stub := &stubClient{responses: []string{"not json"}}
		svc := app.New(app.WithClient(stub), app.WithClock(func() time.Time { return ref }))

		Convey("When extracting", func() {
			events := svc.ExtractWithAI(context.Background(), "明日14時から会議", app.ExtractionContext{})

			Convey("Then the pattern fallback result is returned, not an error", func() {
				So(events, ShouldHaveLength, 1)
				So(events[0].ExtractedBy, ShouldEqual, model.ProvenancePattern)
				So(events[0].Date, ShouldEqual, "2024年5月11日")
				So(events[0].StartTime, ShouldEqual, "14:00")
			})
		})
	})

	Convey("Given a service whose backend fails outright", t, func() {
		stub := &stubClient{err: context.DeadlineExceeded}
		svc := app.New(app.WithClient(stub), app.WithClock(func() time.Time { return ref }))

		Convey("When extracting", func() {
			events := svc.ExtractWithAI(context.Background(), "明日14時から会議", app.ExtractionContext{})

			Convey("Then the fallback still answers", func() {
				So(events, ShouldHaveLength, 1)
				So(events[0].ExtractedBy, ShouldEqual, model.ProvenancePattern)
			})
		})
	})

	Convey("Given a service with no backend configured", t, func() {
		svc := app.New(app.WithClock(func() time.Time { return ref }))

		Convey("When extracting", func() {
			events := svc.ExtractWithAI(context.Background(), "明日14時から会議", app.ExtractionContext{})

			Convey("Then the pattern path answers directly", func() {
				So(events, ShouldHaveLength, 1)
				So(events[0].ExtractedBy, ShouldEqual, model.ProvenancePattern)
			})
		})

		Convey("When extracting from empty text", func() {
			events := svc.ExtractWithAI(context.Background(), "", app.ExtractionContext{})

			Convey("Then the result is an empty list, no error", func() {
				So(events, ShouldBeEmpty)
			})
		})
	})
}

func TestExtractPatternOnly(t *testing.T) {
	Convey("Given a service with a backend configured", t, func() {
		stub := &stubClient{responses: []string{aiResponse}}
		svc := app.New(app.WithClient(stub), app.WithClock(func() time.Time { return ref }))

		Convey("When extracting pattern-only", func() {
			events := svc.ExtractPatternOnly("明日14時から会議", app.ExtractionContext{})

			Convey("Then the backend is never consulted", func() {
				So(stub.calls, ShouldEqual, 0)
				So(events, ShouldHaveLength, 1)
				So(events[0].ExtractedBy, ShouldEqual, model.ProvenancePattern)
			})
		})
	})
}

func TestBatchExtract(t *testing.T) {
	Convey("Given a service and duplicate events across texts", t, func() {
		stub := &stubClient{responses: []string{
			`{"events":[{"title":"会議","date":"2024年5月11日","startTime":"14:00","confidence":0.4}],"summary":""}`,
			`{"events":[{"title":"会議","date":"2024年5月11日","startTime":"14:00","confidence":0.8}],"summary":""}`,
		}}
		svc := app.New(
			app.WithClient(stub),
			app.WithClock(func() time.Time { return ref }),
			app.WithBatchDelay(time.Millisecond),
		)

		Convey("When extracting a batch", func() {
			events := svc.BatchExtract(context.Background(), []string{"text one", "text two"})

			Convey("Then texts are processed strictly in order", func() {
				So(stub.calls, ShouldEqual, 2)
				So(stub.prompts[0], ShouldContainSubstring, "text one")
				So(stub.prompts[1], ShouldContainSubstring, "text two")
			})

			Convey("And duplicates merge keeping the higher confidence", func() {
				So(events, ShouldHaveLength, 1)
				So(events[0].Confidence, ShouldEqual, 0.8)
			})
		})
	})

	Convey("Given an empty batch", t, func() {
		svc := app.New(app.WithBatchDelay(time.Millisecond))

		Convey("Then the result is empty", func() {
			So(svc.BatchExtract(context.Background(), nil), ShouldBeEmpty)
		})
	})
}

func TestAnalyzeEmail(t *testing.T) {
	Convey("Given a service with a backend", t, func() {
		stub := &stubClient{responses: []string{aiResponse}}
		svc := app.New(app.WithClient(stub), app.WithClock(func() time.Time { return ref }))

		Convey("When analyzing an email", func() {
			events := svc.AnalyzeEmail(context.Background(), app.Email{
				Subject: "定例会のご案内",
				From:    "tanaka@example.com",
				Body:    "明日14時から会議を行います。",
			})

			Convey("Then subject and sender feed the composed prompt", func() {
				So(stub.calls, ShouldEqual, 1)
				So(stub.prompts[0], ShouldContainSubstring, "件名: 定例会のご案内")
				So(stub.prompts[0], ShouldContainSubstring, "送信者: tanaka@example.com")
				So(stub.prompts[0], ShouldContainSubstring, "明日14時から会議を行います。")
			})

			Convey("And events come back as usual", func() {
				So(events, ShouldHaveLength, 1)
			})
		})
	})
}
