package reldate_test

import (
	"testing"
	"time"

	reldate "github.com/mizuki-io/yotei/internal/domain/reldate"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolve(t *testing.T) {
	Convey("Given a fixed reference instant", t, func() {
		ref := time.Date(2024, 5, 10, 9, 30, 0, 0, time.Local)

		Convey("When resolving 今日", func() {
			d, ok := reldate.Resolve("今日", ref)

			Convey("Then it should be the reference date", func() {
				So(ok, ShouldBeTrue)
				So(reldate.Format(d), ShouldEqual, "2024年5月10日")
			})
		})

		Convey("When resolving 本日", func() {
			d, ok := reldate.Resolve("本日", ref)

			Convey("Then it should also be the reference date", func() {
				So(ok, ShouldBeTrue)
				So(reldate.Format(d), ShouldEqual, "2024年5月10日")
			})
		})

		Convey("When resolving 明日", func() {
			d, ok := reldate.Resolve("明日", ref)

			Convey("Then it should be one day after the reference", func() {
				So(ok, ShouldBeTrue)
				So(reldate.Format(d), ShouldEqual, "2024年5月11日")
			})
		})

		Convey("When resolving 明後日", func() {
			d, ok := reldate.Resolve("明後日", ref)

			Convey("Then it should be two days after the reference", func() {
				So(ok, ShouldBeTrue)
				So(reldate.Format(d), ShouldEqual, "2024年5月12日")
			})
		})

		Convey("When resolving across a month boundary", func() {
			endOfMonth := time.Date(2024, 5, 31, 12, 0, 0, 0, time.Local)
			d, ok := reldate.Resolve("明日", endOfMonth)

			Convey("Then the month should roll over", func() {
				So(ok, ShouldBeTrue)
				So(reldate.Format(d), ShouldEqual, "2024年6月1日")
			})
		})

		Convey("When resolving an unknown token", func() {
			_, ok := reldate.Resolve("来週", ref)

			Convey("Then it should not resolve", func() {
				So(ok, ShouldBeFalse)
				So(reldate.Known("来週"), ShouldBeFalse)
			})
		})
	})
}

func TestFormat(t *testing.T) {
	Convey("Given single-digit month and day", t, func() {
		d := time.Date(2025, 1, 5, 0, 0, 0, 0, time.Local)

		Convey("Then Format should not zero-pad", func() {
			So(reldate.Format(d), ShouldEqual, "2025年1月5日")
		})
	})
}
