package coursetools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"revcast/internal/model/course"
)

func TestExpectedScriptDurationSeconds(t *testing.T) {
	Convey("expected duration derives from the standard spoken pace", t, func() {
		So(ExpectedScriptDurationSeconds(750), ShouldEqual, 300)
		So(ExpectedScriptDurationSeconds(150), ShouldEqual, 60)
		So(ExpectedScriptDurationSeconds(0), ShouldEqual, 0)
	})
}

func TestAudioValidator(t *testing.T) {
	Convey("audio rubric checks", t, func() {
		v := NewAudioValidator(DefaultAudioRubric())

		segments := []course.AudioSegment{
			{Index: 0, Speaker: "Maya", DurationSeconds: 95},
			{Index: 1, Speaker: "Rohan", DurationSeconds: 95},
			{Index: 2, Speaker: "Maya", DurationSeconds: 95},
		}

		Convey("duration inside tolerance with sane gaps passes", func() {
			audio := &course.Audio{
				DurationSeconds: 285.6, // 600ms spread over two joins
				Segments:        segments,
			}
			result := v.Validate(audio, 300)
			So(result.IsValid, ShouldBeTrue)
			So(result.Errors, ShouldBeEmpty)
		})

		Convey("duration outside tolerance is flagged", func() {
			audio := &course.Audio{
				DurationSeconds: 345.6,
				Segments:        segments,
			}
			result := v.Validate(audio, 300)
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors[0], ShouldContainSubstring, "outside 10% tolerance")
			So(result.Errors[0], ShouldContainSubstring, "300.0")
		})

		Convey("oversized segment gaps are flagged", func() {
			audio := &course.Audio{
				DurationSeconds: 287.5, // 1250ms per join
				Segments:        segments,
			}
			result := v.Validate(audio, 285)
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors[0], ShouldContainSubstring, "segment gap")
			So(result.Errors[0], ShouldContainSubstring, "200-800ms")
		})

		Convey("undersized segment gaps are flagged", func() {
			audio := &course.Audio{
				DurationSeconds: 285.1, // 50ms per join
				Segments:        segments,
			}
			result := v.Validate(audio, 285)
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors[0], ShouldContainSubstring, "segment gap")
		})

		Convey("a single segment skips the gap check", func() {
			audio := &course.Audio{
				DurationSeconds: 95,
				Segments:        segments[:1],
			}
			result := v.Validate(audio, 95)
			So(result.IsValid, ShouldBeTrue)
		})

		Convey("missing audio is a single error", func() {
			result := v.Validate(nil, 300)
			So(result.IsValid, ShouldBeFalse)
			So(result.Errors, ShouldHaveLength, 1)

			result = v.Validate(&course.Audio{}, 300)
			So(result.IsValid, ShouldBeFalse)
		})
	})
}
