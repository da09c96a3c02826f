package coursetools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"revcast/internal/model/course"
)

func TestMCQValidator(t *testing.T) {
	Convey("question set rubric checks", t, func() {
		v := NewMCQValidator(DefaultMCQRubric())
		script := validScript()
		spec := testEpisodeSpec() // 7 minute target, 420 seconds

		Convey("a well-formed set passes without warnings", func() {
			result := v.Validate(validMCQSet(), script, spec)
			So(result.IsValid, ShouldBeTrue)
			So(result.Errors, ShouldBeEmpty)
			So(result.Warnings, ShouldBeEmpty)
		})

		Convey("a timestamp beyond the episode end is flagged", func() {
			set := validMCQSet()
			set.Questions[1].TimestampRef = 500
			result := v.Validate(set, script, spec)
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors, ShouldHaveLength, 1)
			So(result.Errors[0], ShouldContainSubstring, "timestamp_ref 500s exceeds episode duration 420s")
			So(result.Errors[0], ShouldContainSubstring, "q2")
		})

		Convey("a negative timestamp is flagged", func() {
			set := validMCQSet()
			set.Questions[0].TimestampRef = -5
			result := v.Validate(set, script, spec)
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors[0], ShouldContainSubstring, "timestamp_ref is negative")
		})

		Convey("too few questions is flagged", func() {
			set := validMCQSet()
			set.Questions = set.Questions[:2]
			result := v.Validate(set, script, spec)
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors[0], ShouldContainSubstring, "mcq count 2 outside allowed range [3, 6]")
		})

		Convey("too many questions is flagged", func() {
			set := validMCQSet()
			extra := set.Questions
			for len(set.Questions) <= 6 {
				q := extra[len(set.Questions)%4]
				q.QID = q.QID + "x"
				set.Questions = append(set.Questions, q)
			}
			result := v.Validate(set, script, spec)
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors[0], ShouldContainSubstring, "mcq count 7 outside allowed range")
		})

		Convey("a question with the wrong option count is flagged", func() {
			set := validMCQSet()
			set.Questions[0].Options = set.Questions[0].Options[:3]
			result := v.Validate(set, script, spec)
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors[0], ShouldContainSubstring, "must have exactly 4 options, got 3")
		})

		Convey("an out-of-range correct index is flagged", func() {
			set := validMCQSet()
			set.Questions[2].CorrectIndex = 4
			result := v.Validate(set, script, spec)
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors[0], ShouldContainSubstring, "correct_index 4 out of range")
		})

		Convey("an unknown question type is flagged", func() {
			set := validMCQSet()
			set.Questions[3].Type = "essay"
			result := v.Validate(set, script, spec)
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors[0], ShouldContainSubstring, `unknown type "essay"`)
		})

		Convey("wording the script never uses is flagged", func() {
			set := validMCQSet()
			set.Questions[0].QuestionText = "Which organelle performs cellular respiration inside animals"
			set.Questions[0].Options = []string{"mitochondria", "ribosomes", "nucleus", "membrane"}
			result := v.Validate(set, script, spec)
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors[0], ShouldContainSubstring, "does not match script terms")
		})

		Convey("an empty set yields a single error", func() {
			result := v.Validate(&course.MCQSet{}, script, spec)
			So(result.Errors, ShouldResemble, []string{"mcq set is empty"})

			result = v.Validate(nil, script, spec)
			So(result.Errors, ShouldResemble, []string{"mcq set is empty"})
		})

		Convey("coverage and distribution are warnings, not errors", func() {
			set := validMCQSet()
			for i := range set.Questions {
				set.Questions[i].Type = course.QuestionUnderstanding
				set.Questions[i].ConceptID = "c1"
			}
			result := v.Validate(set, script, spec)
			So(result.IsValid, ShouldBeTrue)
			So(result.Errors, ShouldBeEmpty)
			So(result.Warnings, ShouldContain, "concept c2 has no question")
			So(result.Warnings, ShouldContain, "recall questions below 40% of the set")
			So(result.Warnings, ShouldContain, "concept questions below 30% of the set")
		})
	})
}
