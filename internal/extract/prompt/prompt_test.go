package prompt_test

import (
	"strings"
	"testing"
	"time"

	prompt "github.com/mizuki-io/yotei/internal/extract/prompt"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuild(t *testing.T) {
	Convey("Given a builder and a fixed reference date", t, func() {
		b := prompt.NewBuilder()
		// 2024-05-10 was a Friday.
		now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)

		Convey("When building with text only", func() {
			p := b.Build("明日14時から会議", prompt.Context{Now: now})

			Convey("Then the current date is stated in Japanese long form", func() {
				So(p, ShouldContainSubstring, "現在の日付: 2024年5月10日金曜日")
			})

			Convey("And the source text appears verbatim inside delimiters", func() {
				So(p, ShouldContainSubstring, "\"\"\"\n明日14時から会議\n\"\"\"")
			})

			Convey("And the fixed output schema is mandated", func() {
				So(p, ShouldContainSubstring, `"events"`)
				So(p, ShouldContainSubstring, `"summary"`)
				So(p, ShouldContainSubstring, "YYYY年MM月DD日")
				So(p, ShouldContainSubstring, "24時間形式")
				So(p, ShouldContainSubstring, "JSONのみを出力")
			})

			Convey("And no subject or sender lines leak in", func() {
				So(p, ShouldNotContainSubstring, "メールの件名")
				So(p, ShouldNotContainSubstring, "送信者")
			})
		})

		Convey("When building with subject and sender", func() {
			p := b.Build("本文", prompt.Context{Subject: "定例会", From: "tanaka@example.com", Now: now})

			So(p, ShouldContainSubstring, "メールの件名: 定例会")
			So(p, ShouldContainSubstring, "送信者: tanaka@example.com")
		})

		Convey("When building on different weekdays", func() {
			sunday := time.Date(2024, 5, 12, 0, 0, 0, 0, time.Local)
			p := b.Build("x", prompt.Context{Now: sunday})

			So(p, ShouldContainSubstring, "2024年5月12日日曜日")
		})

		Convey("Then building is deterministic for the same inputs", func() {
			a := b.Build("text", prompt.Context{Now: now})
			c := b.Build("text", prompt.Context{Now: now})
			So(a, ShouldEqual, c)
			So(strings.Contains(a, "予定管理アシスタント"), ShouldBeTrue)
		})
	})
}
