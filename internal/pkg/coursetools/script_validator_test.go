package coursetools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"revcast/internal/model/course"
)

func TestScriptValidator(t *testing.T) {
	Convey("script rubric checks", t, func() {
		v := NewScriptValidator(DefaultScriptRubric("Maya", "Rohan"))
		spec := testEpisodeSpec()

		Convey("a well-formed script passes", func() {
			result := v.Validate(validScript(), spec, "6-8")
			So(result.IsValid, ShouldBeTrue)
			So(result.Errors, ShouldBeEmpty)
		})

		Convey("an undersized script reports actual and minimum counts", func() {
			result := v.Validate(shortScript(), spec, "6-8")
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors, ShouldHaveLength, 1)
			So(result.Errors[0], ShouldContainSubstring, "script too short")
			So(result.Errors[0], ShouldContainSubstring, "300")
			So(result.Errors[0], ShouldContainSubstring, "450")
		})

		Convey("an oversized script reports actual and maximum counts", func() {
			result := v.Validate(longScript(), spec, "6-8")
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors, ShouldHaveLength, 1)
			So(result.Errors[0], ShouldContainSubstring, "script too long")
			So(result.Errors[0], ShouldContainSubstring, "1110")
			So(result.Errors[0], ShouldContainSubstring, "1100")
		})

		Convey("untagged lines drop the tagging ratio below threshold", func() {
			script := validScript()
			script.Sections[1].Text += "\nThe leaf stays green in bright light all summer long." +
				"\nEvery cell keeps working while the light lasts today." +
				"\nGreen color comes from the same molecules inside."
			result := v.Validate(script, spec, "6-8")
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors, ShouldHaveLength, 1)
			So(result.Errors[0], ShouldContainSubstring, "speaker dialogue tagging ratio")
		})

		Convey("forbidden teacher-voice phrases are flagged", func() {
			script := validScript()
			script.Sections[2].Text += "\nMaya: Remember the homework before tomorrow arrives everyone."
			result := v.Validate(script, spec, "6-8")
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors, ShouldHaveLength, 1)
			So(result.Errors[0], ShouldContainSubstring, "forbidden teacher-voice phrase")
			So(result.Errors[0], ShouldContainSubstring, "homework")
		})

		Convey("a missing required section is flagged", func() {
			script := validScript()
			script.Sections = script.Sections[:2] // drop summary
			result := v.Validate(script, spec, "6-8")
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors, ShouldHaveLength, 1)
			So(result.Errors[0], ShouldContainSubstring, `missing required section "summary"`)
		})

		Convey("a planned concept no section covers is flagged", func() {
			wider := *spec
			wider.ConceptIDs = []string{"c1", "c2", "c3"}
			result := v.Validate(validScript(), &wider, "6-8")
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors, ShouldHaveLength, 1)
			So(result.Errors[0], ShouldContainSubstring, "no section covers concept c3")
		})

		Convey("declarative content without a source reference is flagged", func() {
			script := validScript()
			script.Sections[1].SourceReference = ""
			result := v.Validate(script, spec, "6-8")
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors, ShouldHaveLength, 1)
			So(result.Errors[0], ShouldContainSubstring, "without a source reference")
		})

		Convey("an inferred section without hedged language is flagged", func() {
			script := validScript()
			script.Sections[1].SourceReference = ""
			script.Sections[1].Inferred = true
			result := v.Validate(script, spec, "6-8")
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors, ShouldHaveLength, 1)
			So(result.Errors[0], ShouldContainSubstring, "lacks hedged language")
		})

		Convey("an inferred section with hedged language passes", func() {
			script := validScript()
			script.Sections[1].SourceReference = ""
			script.Sections[1].Inferred = true
			script.Sections[1].Text += "\nMaya: The glucose usually moves down toward each root below the ground."
			result := v.Validate(script, spec, "6-8")
			So(result.IsValid, ShouldBeTrue)
		})

		Convey("an empty script yields a single error", func() {
			result := v.Validate(&course.Script{}, spec, "6-8")
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors, ShouldResemble, []string{"script is empty"})

			result = v.Validate(nil, spec, "6-8")
			So(result.Errors, ShouldResemble, []string{"script is empty"})
		})
	})
}
