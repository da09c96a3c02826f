package coursetools

import (
	"fmt"
	"strings"

	"revcast/internal/model/course"
)

// Fixed script constants.
const (
	MinScriptWords             = 450
	MaxScriptWords             = 1100
	MinSpeakerTaggingRatio     = 0.95
	ReadingLevelGradeTolerance = 2.0
)

// ScriptRubric holds the script validation constants. Every check is
// independent; all failures are collected in one pass.
type ScriptRubric struct {
	MinWords               int
	MaxWords               int
	MinSpeakerTaggingRatio float64
	Speakers               []string
	ForbiddenPhrases       []string
	RequiredSections       []string
	HedgingPhrases         []string
	GradeTolerance         float64
}

// DefaultScriptRubric builds the standard rubric for a two-speaker
// dialogue.
func DefaultScriptRubric(speaker1, speaker2 string) *ScriptRubric {
	return &ScriptRubric{
		MinWords:               MinScriptWords,
		MaxWords:               MaxScriptWords,
		MinSpeakerTaggingRatio: MinSpeakerTaggingRatio,
		Speakers:               []string{speaker1, speaker2},
		ForbiddenPhrases: []string{
			"today we will learn",
			"in this lesson",
			"as your teacher",
			"dear students",
			"open your textbook",
			"listen carefully, class",
			"homework",
		},
		RequiredSections: []string{"hook", "core_content", "summary"},
		HedgingPhrases: []string{
			"might", "may", "could", "possibly", "perhaps",
			"typically", "often", "generally", "usually",
			"is believed", "tends to", "in most cases",
		},
		GradeTolerance: ReadingLevelGradeTolerance,
	}
}

// ScriptValidator checks a generated script against the rubric. Pure:
// no side effects, no network, deterministic for identical inputs.
type ScriptValidator struct {
	rubric   *ScriptRubric
	analyzer *TextAnalyzer
}

// NewScriptValidator creates a script validator.
func NewScriptValidator(rubric *ScriptRubric) *ScriptValidator {
	return &ScriptValidator{
		rubric:   rubric,
		analyzer: NewTextAnalyzer(),
	}
}

// Validate runs every script check and aggregates the failures.
func (v *ScriptValidator) Validate(script *course.Script, spec *course.EpisodeSpec, gradeBand string) *ValidationResult {
	result := NewValidationResult()

	if script == nil || len(script.Sections) == 0 {
		result.addError("script is empty")
		return result
	}

	text := ScriptText(script)

	words := v.analyzer.WordCount(text)
	if words < v.rubric.MinWords {
		result.addError(fmt.Sprintf("script too short: word count %d below minimum %d", words, v.rubric.MinWords))
	}
	if words > v.rubric.MaxWords {
		result.addError(fmt.Sprintf("script too long: word count %d above maximum %d", words, v.rubric.MaxWords))
	}

	ratio, tagged, total := SpeakerTaggingRatio(script, v.rubric.Speakers)
	if ratio < v.rubric.MinSpeakerTaggingRatio {
		result.addError(fmt.Sprintf("speaker dialogue tagging ratio %.2f below required %.2f (%d of %d lines tagged)",
			ratio, v.rubric.MinSpeakerTaggingRatio, tagged, total))
	}

	lower := strings.ToLower(text)
	for _, phrase := range v.rubric.ForbiddenPhrases {
		if strings.Contains(lower, phrase) {
			result.addError(fmt.Sprintf("forbidden teacher-voice phrase %q found in script", phrase))
		}
	}

	sectionIDs := make(map[string]bool, len(script.Sections))
	for _, s := range script.Sections {
		sectionIDs[s.ID] = true
	}
	for _, required := range v.rubric.RequiredSections {
		if !sectionIDs[required] {
			result.addError(fmt.Sprintf("missing required section %q", required))
		}
	}

	covered := make(map[string]bool)
	for _, s := range script.Sections {
		for _, id := range s.ConceptIDsCovered {
			covered[id] = true
		}
	}
	for _, id := range spec.ConceptIDs {
		if !covered[id] {
			result.addError(fmt.Sprintf("no section covers concept %s", id))
		}
	}

	v.checkSourcing(script, result)
	v.checkReadingLevel(text, gradeBand, result)

	return result
}

// checkSourcing enforces the hallucination guard: declarative content
// needs a source reference or an explicit inferred marker, and
// inferred content must be phrased with hedged language.
func (v *ScriptValidator) checkSourcing(script *course.Script, result *ValidationResult) {
	for _, s := range script.Sections {
		if s.Inferred {
			if !v.containsHedging(s.Text) {
				result.addError(fmt.Sprintf("hallucination guard: inferred section %q lacks hedged language", s.ID))
			}
			continue
		}
		if s.SourceReference == "" && v.hasDeclarativeSentence(s.Text) {
			result.addError(fmt.Sprintf("section %q makes claims without a source reference and is not marked inferred", s.ID))
		}
	}
}

func (v *ScriptValidator) containsHedging(text string) bool {
	lower := strings.ToLower(text)
	for _, h := range v.rubric.HedgingPhrases {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

// hasDeclarativeSentence reports whether the text asserts anything:
// at least one sentence ending in a period rather than a question or
// exclamation.
func (v *ScriptValidator) hasDeclarativeSentence(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Drop the speaker tag before inspecting the sentence.
		if i := strings.Index(line, ":"); i > 0 && i < 40 {
			line = strings.TrimSpace(line[i+1:])
		}
		if strings.Contains(line, ".") || strings.Contains(line, "。") {
			return true
		}
	}
	return false
}

func (v *ScriptValidator) checkReadingLevel(text, gradeBand string, result *ValidationResult) {
	planner := NewPlanner()
	target, err := planner.TargetMinutes(gradeBand)
	if err != nil || target == 0 {
		return
	}
	// Midpoint grade of the band is good enough for a soft check.
	grade := bandMidpoint(gradeBand)
	if grade == 0 {
		return
	}
	estimated := v.analyzer.EstimateGradeLevel(text)
	if estimated == 0 {
		return
	}
	if diff := estimated - grade; diff > v.rubric.GradeTolerance || diff < -v.rubric.GradeTolerance {
		result.addWarning(fmt.Sprintf("estimated reading level %.1f deviates from grade band %s by more than %.0f grades",
			estimated, gradeBand, v.rubric.GradeTolerance))
	}
}

func bandMidpoint(gradeBand string) float64 {
	parts := strings.SplitN(gradeBand, "-", 2)
	var lo, hi int
	if _, err := fmt.Sscanf(strings.TrimSpace(parts[0]), "%d", &lo); err != nil {
		return 0
	}
	hi = lo
	if len(parts) == 2 {
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[1]), "%d", &hi); err != nil {
			hi = lo
		}
	}
	return float64(lo+hi) / 2
}
