package coursetools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"revcast/internal/model/course"
)

func TestSplitDialogue(t *testing.T) {
	Convey("scripts split into speaker turns", t, func() {
		speakers := []string{"Maya", "Rohan"}

		Convey("tagged lines become one segment each", func() {
			script := &course.Script{Sections: []course.Section{
				{ID: "hook", Text: "Maya: Quick question for you.\nRohan: Go ahead."},
			}}
			segments := SplitDialogue(script, speakers)
			So(segments, ShouldHaveLength, 2)
			So(segments[0].Speaker, ShouldEqual, "Maya")
			So(segments[0].Text, ShouldEqual, "Quick question for you.")
			So(segments[1].Speaker, ShouldEqual, "Rohan")
			So(segments[1].Text, ShouldEqual, "Go ahead.")
		})

		Convey("speaker tags match case-insensitively", func() {
			script := &course.Script{Sections: []course.Section{
				{ID: "hook", Text: "maya: Lower case tag."},
			}}
			segments := SplitDialogue(script, speakers)
			So(segments, ShouldHaveLength, 1)
			So(segments[0].Speaker, ShouldEqual, "Maya")
		})

		Convey("continuation lines join the previous turn", func() {
			script := &course.Script{Sections: []course.Section{
				{ID: "hook", Text: "Maya: First part\nand the rest of it.\nRohan: Reply."},
			}}
			segments := SplitDialogue(script, speakers)
			So(segments, ShouldHaveLength, 2)
			So(segments[0].Text, ShouldEqual, "First part and the rest of it.")
		})

		Convey("segments cross section boundaries in order", func() {
			segments := SplitDialogue(validScript(), speakers)
			So(len(segments), ShouldEqual, 34)
			So(segments[0].Speaker, ShouldEqual, "Maya")
			So(segments[1].Speaker, ShouldEqual, "Rohan")
		})

		Convey("an untagged leading line is dropped", func() {
			script := &course.Script{Sections: []course.Section{
				{ID: "hook", Text: "Narration without a tag.\nMaya: Actual dialogue."},
			}}
			segments := SplitDialogue(script, speakers)
			So(segments, ShouldHaveLength, 1)
			So(segments[0].Speaker, ShouldEqual, "Maya")
		})
	})
}

func TestSpeakerTaggingRatio(t *testing.T) {
	Convey("tagging ratio reflects recognized speaker tags", t, func() {
		speakers := []string{"Maya", "Rohan"}

		Convey("fully tagged scripts score 1.0", func() {
			ratio, tagged, total := SpeakerTaggingRatio(validScript(), speakers)
			So(ratio, ShouldEqual, 1.0)
			So(tagged, ShouldEqual, 34)
			So(total, ShouldEqual, 34)
		})

		Convey("unknown speakers do not count as tagged", func() {
			script := &course.Script{Sections: []course.Section{
				{ID: "hook", Text: "Maya: Hello.\nNarrator: Meanwhile elsewhere.\nRohan: Hi.\nJust text."},
			}}
			ratio, tagged, total := SpeakerTaggingRatio(script, speakers)
			So(total, ShouldEqual, 4)
			So(tagged, ShouldEqual, 2)
			So(ratio, ShouldEqual, 0.5)
		})

		Convey("an empty script scores zero", func() {
			ratio, tagged, total := SpeakerTaggingRatio(&course.Script{}, speakers)
			So(ratio, ShouldEqual, 0.0)
			So(tagged, ShouldEqual, 0)
			So(total, ShouldEqual, 0)
		})
	})
}
