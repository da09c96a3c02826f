package course

// EpisodeState tracks an episode through the approval-gated pipeline.
type EpisodeState string

const (
	StatePlanned           EpisodeState = "planned"
	StatePlanApproved      EpisodeState = "plan_approved"
	StateContentGenerating EpisodeState = "content_generating"
	StateContentGenerated  EpisodeState = "content_generated"
	StateContentApproved   EpisodeState = "content_approved"
	StateAudioGenerating   EpisodeState = "audio_generating"
	StateAudioGenerated    EpisodeState = "audio_generated"
	StateApproved          EpisodeState = "approved"
	StateNeedsReview       EpisodeState = "needs_review"
)

// String returns the state name.
func (s EpisodeState) String() string { return string(s) }

// forward transitions driven by stage completion or approval actions
var stateTransitions = map[EpisodeState][]EpisodeState{
	StatePlanned:           {StatePlanApproved},
	StatePlanApproved:      {StateContentGenerating},
	StateContentGenerating: {StateContentGenerated},
	StateContentGenerated:  {StateContentApproved, StateContentGenerating},
	StateContentApproved:   {StateAudioGenerating, StateContentGenerating},
	StateAudioGenerating:   {StateAudioGenerated, StateContentGenerating},
	StateAudioGenerated:    {StateApproved, StateContentGenerating},
	StateApproved:          {StateContentGenerating},
	StateNeedsReview:       {StateContentGenerating},
}

// CanTransitionTo reports whether the transition s -> next is allowed.
// Any state may fall into needs_review when repair attempts are exhausted.
func (s EpisodeState) CanTransitionTo(next EpisodeState) bool {
	if next == StateNeedsReview {
		return true
	}
	for _, t := range stateTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// CanRequestRevision reports whether a human revision request is valid
// from this state. Revision is only meaningful once content exists.
func (s EpisodeState) CanRequestRevision() bool {
	switch s {
	case StateContentGenerated, StateContentApproved, StateAudioGenerating,
		StateAudioGenerated, StateApproved, StateNeedsReview:
		return true
	}
	return false
}

// IsTerminal reports whether the state ends the pipeline without
// further automatic processing.
func (s EpisodeState) IsTerminal() bool {
	return s == StateApproved || s == StateNeedsReview
}

// Difficulty classifies a concept.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether d is a known difficulty.
func (d Difficulty) IsValid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// QuestionType classifies an MCQ.
type QuestionType string

const (
	QuestionRecall        QuestionType = "recall"
	QuestionConcept       QuestionType = "concept"
	QuestionUnderstanding QuestionType = "understanding"
	QuestionApplication   QuestionType = "application"
)

// IsValid reports whether t is a known question type.
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionRecall, QuestionConcept, QuestionUnderstanding, QuestionApplication:
		return true
	}
	return false
}

// PlanStatus tracks the chapter-level plan approval gate.
type PlanStatus string

const (
	PlanStatusDraft    PlanStatus = "draft"
	PlanStatusApproved PlanStatus = "approved"
	PlanStatusReplaced PlanStatus = "replaced"
)
