package coursetools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPromptLibrary(t *testing.T) {
	Convey("the default prompt library", t, func() {
		l := DefaultPromptLibrary()

		Convey("symbolic subjects are not offered", func() {
			So(l.IsSubjectSupported("Biology"), ShouldBeTrue)
			So(l.IsSubjectSupported("History"), ShouldBeTrue)
			So(l.IsSubjectSupported("Mathematics"), ShouldBeFalse)
			So(l.IsSubjectSupported("mathematics"), ShouldBeFalse)
			So(l.IsSubjectSupported("Grammar"), ShouldBeFalse)
		})

		Convey("subject-specific templates override the default", func() {
			history := l.ConceptExtractionPrompt("History", "6-8", "chapter text")
			So(history, ShouldContainSubstring, "history teacher")
			So(history, ShouldContainSubstring, "chapter text")

			generic := l.ConceptExtractionPrompt("Biology", "6-8", "chapter text")
			So(generic, ShouldNotContainSubstring, "history teacher")
			So(generic, ShouldContainSubstring, "6-8")
		})

		Convey("the script prompt carries speakers and the word target", func() {
			prompt := l.ScriptPrompt("Science", "6-8", 1050, "concept block", "Maya", "Rohan")
			So(prompt, ShouldContainSubstring, "Maya")
			So(prompt, ShouldContainSubstring, "Rohan")
			So(prompt, ShouldContainSubstring, "1050 words")
			So(prompt, ShouldContainSubstring, "concept block")
		})

		Convey("the mcq prompt embeds the script", func() {
			prompt := l.MCQPrompt("Science", "the script text", "concept block")
			So(prompt, ShouldContainSubstring, "the script text")
			So(prompt, ShouldContainSubstring, "concept block")
		})

		Convey("every repair action has a prompt template", func() {
			actions := []string{
				ActionRegenShortScript,
				ActionRegenLongScript,
				ActionRegenToneFix,
				ActionRegenMCQSync,
				ActionRegenRemoveHallucination,
				ActionRegenPronunciation,
				ActionRegenStructure,
				ActionRegenClarity,
			}
			for _, action := range actions {
				So(l.HasRepairAction(action), ShouldBeTrue)
				prompt, ok := l.RepairPrompt(action, `{"artifact":true}`, []string{"violation one", "violation two"})
				So(ok, ShouldBeTrue)
				So(prompt, ShouldContainSubstring, "violation one")
				So(prompt, ShouldContainSubstring, "violation two")
				So(prompt, ShouldContainSubstring, `{"artifact":true}`)
			}
		})

		Convey("unknown repair actions report false", func() {
			_, ok := l.RepairPrompt("regen_everything", "{}", nil)
			So(ok, ShouldBeFalse)
			So(l.HasRepairAction("regen_everything"), ShouldBeFalse)
		})
	})
}
