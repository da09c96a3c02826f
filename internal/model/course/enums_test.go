package course

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

var allStates = []EpisodeState{
	StatePlanned,
	StatePlanApproved,
	StateContentGenerating,
	StateContentGenerated,
	StateContentApproved,
	StateAudioGenerating,
	StateAudioGenerated,
	StateApproved,
	StateNeedsReview,
}

func TestEpisodeStateTransitions(t *testing.T) {
	Convey("the episode state machine", t, func() {
		Convey("the happy path is walkable end to end", func() {
			path := []EpisodeState{
				StatePlanned,
				StatePlanApproved,
				StateContentGenerating,
				StateContentGenerated,
				StateContentApproved,
				StateAudioGenerating,
				StateAudioGenerated,
				StateApproved,
			}
			for i := 0; i < len(path)-1; i++ {
				So(path[i].CanTransitionTo(path[i+1]), ShouldBeTrue)
			}
		})

		Convey("stages cannot be skipped", func() {
			So(StatePlanned.CanTransitionTo(StateContentGenerating), ShouldBeFalse)
			So(StatePlanApproved.CanTransitionTo(StateContentGenerated), ShouldBeFalse)
			So(StateContentGenerated.CanTransitionTo(StateAudioGenerating), ShouldBeFalse)
			So(StateContentApproved.CanTransitionTo(StateApproved), ShouldBeFalse)
			So(StateAudioGenerated.CanTransitionTo(StateAudioGenerating), ShouldBeFalse)
		})

		Convey("approval gates cannot run backwards", func() {
			So(StatePlanApproved.CanTransitionTo(StatePlanned), ShouldBeFalse)
			So(StateApproved.CanTransitionTo(StateAudioGenerated), ShouldBeFalse)
		})

		Convey("every state may fall into needs_review", func() {
			for _, s := range allStates {
				So(s.CanTransitionTo(StateNeedsReview), ShouldBeTrue)
			}
		})

		Convey("revision reopens content generation from post-content states", func() {
			reopenable := []EpisodeState{
				StateContentGenerated,
				StateContentApproved,
				StateAudioGenerating,
				StateAudioGenerated,
				StateApproved,
				StateNeedsReview,
			}
			for _, s := range reopenable {
				So(s.CanRequestRevision(), ShouldBeTrue)
				So(s.CanTransitionTo(StateContentGenerating), ShouldBeTrue)
			}

			So(StatePlanned.CanRequestRevision(), ShouldBeFalse)
			So(StatePlanApproved.CanRequestRevision(), ShouldBeFalse)
			So(StateContentGenerating.CanRequestRevision(), ShouldBeFalse)
		})

		Convey("only approved and needs_review are terminal", func() {
			for _, s := range allStates {
				if s == StateApproved || s == StateNeedsReview {
					So(s.IsTerminal(), ShouldBeTrue)
				} else {
					So(s.IsTerminal(), ShouldBeFalse)
				}
			}
		})
	})
}

func TestEnumValidity(t *testing.T) {
	Convey("enum validity checks", t, func() {
		So(DifficultyEasy.IsValid(), ShouldBeTrue)
		So(DifficultyMedium.IsValid(), ShouldBeTrue)
		So(DifficultyHard.IsValid(), ShouldBeTrue)
		So(Difficulty("brutal").IsValid(), ShouldBeFalse)

		So(QuestionRecall.IsValid(), ShouldBeTrue)
		So(QuestionConcept.IsValid(), ShouldBeTrue)
		So(QuestionUnderstanding.IsValid(), ShouldBeTrue)
		So(QuestionApplication.IsValid(), ShouldBeTrue)
		So(QuestionType("essay").IsValid(), ShouldBeFalse)
	})
}
