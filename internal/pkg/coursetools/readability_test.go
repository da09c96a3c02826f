package coursetools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTextAnalyzer(t *testing.T) {
	Convey("text analysis", t, func() {
		a := NewTextAnalyzer()

		Convey("latin text splits on whitespace", func() {
			So(a.WordCount("Plants absorb sunlight energy"), ShouldEqual, 4)
			So(a.WordCount(""), ShouldEqual, 0)
			So(a.WordCount("  spaced   out  "), ShouldEqual, 2)
		})

		Convey("sentences count terminating punctuation", func() {
			So(a.SentenceCount("One. Two! Three?"), ShouldEqual, 3)
			So(a.SentenceCount("no terminator at all"), ShouldEqual, 1)
			So(a.SentenceCount(""), ShouldEqual, 0)
		})

		Convey("grade estimate tracks sentence length and clamps", func() {
			// 13 words per sentence lands near grade 7.
			mid := a.EstimateGradeLevel("one two three four five six seven eight nine ten eleven twelve thirteen.")
			So(mid, ShouldBeBetween, 6, 8)

			short := a.EstimateGradeLevel("Go. Now. Stop.")
			So(short, ShouldBeGreaterThanOrEqualTo, 1)

			long := a.EstimateGradeLevel(dialogueBlock(1) + " " + dialogueBlock(1) + " " + dialogueBlock(1))
			So(long, ShouldBeLessThanOrEqualTo, 12)

			So(a.EstimateGradeLevel(""), ShouldEqual, 0)
		})
	})
}
