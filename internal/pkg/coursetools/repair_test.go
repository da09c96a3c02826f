package coursetools

import (
	"context"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"revcast/internal/model/course"
)

// fakeGenerator returns canned contents in order, repeating the last
// one, and records how it was called.
type fakeGenerator struct {
	outputs []*EpisodeContent
	err     error

	calls       int
	promptTypes []string
	lastTemp    float64
}

func (g *fakeGenerator) Generate(_ context.Context, req *GenerationRequest) (*EpisodeContent, error) {
	g.calls++
	g.promptTypes = append(g.promptTypes, req.PromptType)
	g.lastTemp = req.Temperature
	if g.err != nil {
		return nil, g.err
	}
	i := g.calls - 1
	if i >= len(g.outputs) {
		i = len(g.outputs) - 1
	}
	return g.outputs[i], nil
}

func newTestOrchestrator(g ContentGenerator) *RepairOrchestrator {
	return NewRepairOrchestrator(
		g,
		DefaultPromptLibrary(),
		NewScriptValidator(DefaultScriptRubric("Maya", "Rohan")),
		NewMCQValidator(DefaultMCQRubric()),
		3,
	)
}

func shortContent() *EpisodeContent {
	return &EpisodeContent{Script: shortScript(), MCQs: validMCQSet()}
}

func TestRepairWithRetries(t *testing.T) {
	Convey("the bounded validate-categorize-repair loop", t, func() {
		ctx := context.Background()
		spec := testEpisodeSpec()

		Convey("valid content returns without calling the generator", func() {
			gen := &fakeGenerator{}
			o := newTestOrchestrator(gen)

			outcome := o.RepairWithRetries(ctx, validContent(), spec, "ch-1", "6-8")
			So(outcome.Success, ShouldBeTrue)
			So(outcome.FinalStatus, ShouldEqual, RepairStatusNoRepairNeeded)
			So(outcome.RepairLog, ShouldBeEmpty)
			So(outcome.ErrorReport, ShouldBeNil)
			So(outcome.RequiresTeacherReview, ShouldBeFalse)
			So(gen.calls, ShouldEqual, 0)
		})

		Convey("one working repair fixes a short script", func() {
			gen := &fakeGenerator{outputs: []*EpisodeContent{{
				Script:        validScript(),
				MCQs:          validMCQSet(),
				ChangeSummary: "expanded core content",
			}}}
			o := newTestOrchestrator(gen)

			outcome := o.RepairWithRetries(ctx, shortContent(), spec, "ch-1", "6-8")
			So(outcome.Success, ShouldBeTrue)
			So(outcome.FinalStatus, ShouldEqual, RepairStatusRepairedSuccessfully)
			So(outcome.RequiresTeacherReview, ShouldBeFalse)
			So(gen.calls, ShouldEqual, 1)
			So(gen.promptTypes, ShouldResemble, []string{ActionRegenShortScript})
			So(gen.lastTemp, ShouldEqual, 0.0)

			So(outcome.RepairLog, ShouldHaveLength, 1)
			So(outcome.RepairLog[0].Attempt, ShouldEqual, 1)
			So(outcome.RepairLog[0].Category, ShouldEqual, string(CategoryScriptLength))
			So(outcome.RepairLog[0].Action, ShouldEqual, ActionRegenShortScript)
			So(outcome.RepairLog[0].Success, ShouldBeTrue)
			So(outcome.RepairLog[0].ChangeSummary, ShouldEqual, "expanded core content")
		})

		Convey("an unchanged error set is attempted only once", func() {
			// The generator hands back content failing with the exact
			// same error, so the second attempt is a duplicate.
			gen := &fakeGenerator{outputs: []*EpisodeContent{shortContent()}}
			o := newTestOrchestrator(gen)

			outcome := o.RepairWithRetries(ctx, shortContent(), spec, "ch-1", "6-8")
			So(outcome.Success, ShouldBeFalse)
			So(outcome.FinalStatus, ShouldEqual, RepairStatusExhausted)
			So(outcome.RequiresTeacherReview, ShouldBeTrue)
			So(gen.calls, ShouldEqual, 1)

			So(outcome.RepairLog, ShouldHaveLength, 2)
			So(outcome.RepairLog[0].Success, ShouldBeTrue)
			So(outcome.RepairLog[1].Action, ShouldEqual, "skipped_duplicate")
			So(outcome.RepairLog[1].Success, ShouldBeFalse)

			So(outcome.ErrorReport, ShouldNotBeNil)
			So(outcome.ErrorReport.ChapterID, ShouldEqual, "ch-1")
			So(outcome.ErrorReport.EpisodeNumber, ShouldEqual, spec.EpisodeNumber)
			So(outcome.ErrorReport.FailedStage, ShouldEqual, "content")
			So(outcome.ErrorReport.Categories, ShouldResemble, []string{string(CategoryScriptLength)})
			So(outcome.ErrorReport.SuggestedAction, ShouldEqual, course.SuggestedActionTeacherReview)
		})

		Convey("oscillating error states stay inside the attempt budget", func() {
			// Short becomes long becomes short again; the third attempt
			// would repeat the first error set and is skipped.
			gen := &fakeGenerator{outputs: []*EpisodeContent{
				{Script: longScript(), MCQs: validMCQSet()},
				{Script: shortScript(), MCQs: validMCQSet()},
			}}
			o := newTestOrchestrator(gen)

			outcome := o.RepairWithRetries(ctx, shortContent(), spec, "ch-1", "6-8")
			So(outcome.FinalStatus, ShouldEqual, RepairStatusExhausted)
			So(gen.calls, ShouldEqual, 2)
			So(gen.calls, ShouldBeLessThanOrEqualTo, 3)
			So(gen.promptTypes, ShouldResemble, []string{ActionRegenShortScript, ActionRegenLongScript})

			So(outcome.RepairLog, ShouldHaveLength, 3)
			So(outcome.RepairLog[0].Attempt, ShouldEqual, 1)
			So(outcome.RepairLog[1].Attempt, ShouldEqual, 2)
			So(outcome.RepairLog[2].Attempt, ShouldEqual, 3)
			So(outcome.RepairLog[2].Action, ShouldEqual, "skipped_duplicate")
		})

		Convey("a failing generator exhausts immediately", func() {
			gen := &fakeGenerator{err: fmt.Errorf("model timeout")}
			o := newTestOrchestrator(gen)

			outcome := o.RepairWithRetries(ctx, shortContent(), spec, "ch-1", "6-8")
			So(outcome.FinalStatus, ShouldEqual, RepairStatusExhausted)
			So(outcome.RequiresTeacherReview, ShouldBeTrue)
			So(gen.calls, ShouldEqual, 1)
			So(outcome.RepairLog, ShouldHaveLength, 1)
			So(outcome.RepairLog[0].Success, ShouldBeFalse)
			So(outcome.RepairLog[0].ChangeSummary, ShouldContainSubstring, "generator call failed")
		})

		Convey("exhausted outcomes keep the last attempted content", func() {
			gen := &fakeGenerator{outputs: []*EpisodeContent{shortContent()}}
			o := newTestOrchestrator(gen)

			outcome := o.RepairWithRetries(ctx, shortContent(), spec, "ch-1", "6-8")
			So(outcome.Content, ShouldNotBeNil)
			So(outcome.Content.Script, ShouldNotBeNil)
			So(outcome.Content.MCQs, ShouldNotBeNil)
		})
	})
}

func TestValidateContent(t *testing.T) {
	Convey("ValidateContent merges script and question failures", t, func() {
		o := newTestOrchestrator(&fakeGenerator{})
		spec := testEpisodeSpec()

		set := validMCQSet()
		set.Questions = set.Questions[:2]
		content := &EpisodeContent{Script: shortScript(), MCQs: set}

		result := o.ValidateContent(content, spec, "6-8")
		So(result.IsValid, ShouldBeFalse)
		So(result.Errors, ShouldHaveLength, 2)
		So(result.Errors[0], ShouldContainSubstring, "script too short")
		So(result.Errors[1], ShouldContainSubstring, "mcq count 2")
	})
}
