package coursetools

import (
	"fmt"
	"math"

	"revcast/internal/model/course"
)

// Fixed audio constants.
const (
	AudioDurationTolerance = 0.10
	MinSegmentGapMs        = 200
	MaxSegmentGapMs        = 800
)

// AudioRubric holds the audio artifact validation constants.
type AudioRubric struct {
	DurationTolerance float64
	MinGapMs          int
	MaxGapMs          int
}

// DefaultAudioRubric builds the standard audio rubric.
func DefaultAudioRubric() *AudioRubric {
	return &AudioRubric{
		DurationTolerance: AudioDurationTolerance,
		MinGapMs:          MinSegmentGapMs,
		MaxGapMs:          MaxSegmentGapMs,
	}
}

// AudioValidator checks a concatenated audio artifact against the
// script's expected spoken duration. Pure and deterministic.
type AudioValidator struct {
	rubric *AudioRubric
}

// NewAudioValidator creates an audio validator.
func NewAudioValidator(rubric *AudioRubric) *AudioValidator {
	return &AudioValidator{rubric: rubric}
}

// ExpectedScriptDurationSeconds derives the spoken duration a script
// should produce at the standard pace.
func ExpectedScriptDurationSeconds(wordCount int) float64 {
	return float64(wordCount) / WordsPerMinute * 60
}

// Validate checks measured duration and inter-segment gaps.
func (v *AudioValidator) Validate(audio *course.Audio, expectedDurationSeconds float64) *ValidationResult {
	result := NewValidationResult()

	if audio == nil || audio.DurationSeconds <= 0 {
		result.addError("audio artifact is missing or has no measured duration")
		return result
	}

	if expectedDurationSeconds > 0 {
		diff := math.Abs(audio.DurationSeconds - expectedDurationSeconds)
		if diff > expectedDurationSeconds*v.rubric.DurationTolerance {
			result.addError(fmt.Sprintf("audio duration %.1fs outside %.0f%% tolerance of expected %.1fs",
				audio.DurationSeconds, v.rubric.DurationTolerance*100, expectedDurationSeconds))
		}
	}

	if n := len(audio.Segments); n > 1 {
		sum := 0.0
		for _, s := range audio.Segments {
			sum += s.DurationSeconds
		}
		// Total minus segment content, spread over the joins.
		gapMs := (audio.DurationSeconds - sum) / float64(n-1) * 1000
		if gapMs < float64(v.rubric.MinGapMs) || gapMs > float64(v.rubric.MaxGapMs) {
			result.addError(fmt.Sprintf("audio segment gap %.0fms outside allowed range %d-%dms",
				gapMs, v.rubric.MinGapMs, v.rubric.MaxGapMs))
		}
	}

	return result
}
