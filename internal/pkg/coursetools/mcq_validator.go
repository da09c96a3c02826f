package coursetools

import (
	"fmt"
	"strings"
	"unicode"

	"revcast/internal/model/course"
)

// Fixed MCQ constants.
const (
	MinMCQCount     = 3
	MaxMCQCount     = 6
	MCQOptionCount  = 4
	MinRecallRatio  = 0.40
	MinConceptRatio = 0.30
	// Minimum fraction of question terms that must appear in the
	// script for the cross-check to pass.
	MinScriptTermOverlap = 0.5
)

// MCQRubric holds the question set validation constants.
type MCQRubric struct {
	MinCount        int
	MaxCount        int
	MinRecallRatio  float64
	MinConceptRatio float64
	MinTermOverlap  float64
}

// DefaultMCQRubric builds the standard question rubric.
func DefaultMCQRubric() *MCQRubric {
	return &MCQRubric{
		MinCount:        MinMCQCount,
		MaxCount:        MaxMCQCount,
		MinRecallRatio:  MinRecallRatio,
		MinConceptRatio: MinConceptRatio,
		MinTermOverlap:  MinScriptTermOverlap,
	}
}

// MCQValidator checks a question set against the script it belongs
// to. Pure and deterministic.
type MCQValidator struct {
	rubric *MCQRubric
}

// NewMCQValidator creates a question set validator.
func NewMCQValidator(rubric *MCQRubric) *MCQValidator {
	return &MCQValidator{rubric: rubric}
}

// Validate runs every question check and aggregates the failures.
// Concept coverage and type distribution are soft checks and only
// produce warnings.
func (v *MCQValidator) Validate(set *course.MCQSet, script *course.Script, spec *course.EpisodeSpec) *ValidationResult {
	result := NewValidationResult()

	if set == nil || len(set.Questions) == 0 {
		result.addError("mcq set is empty")
		return result
	}

	count := len(set.Questions)
	if count < v.rubric.MinCount || count > v.rubric.MaxCount {
		result.addError(fmt.Sprintf("mcq count %d outside allowed range [%d, %d]",
			count, v.rubric.MinCount, v.rubric.MaxCount))
	}

	episodeSeconds := spec.TargetDurationMinutes * 60
	scriptTerms := termSet(ScriptText(script))
	typeCounts := make(map[course.QuestionType]int)
	answered := make(map[string]bool)

	for _, q := range set.Questions {
		typeCounts[q.Type]++
		answered[q.ConceptID] = true

		if !q.Type.IsValid() {
			result.addError(fmt.Sprintf("mcq question %s has unknown type %q", q.QID, q.Type))
		}
		if len(q.Options) != MCQOptionCount {
			result.addError(fmt.Sprintf("mcq question %s must have exactly %d options, got %d",
				q.QID, MCQOptionCount, len(q.Options)))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			result.addError(fmt.Sprintf("mcq question %s correct_index %d out of range", q.QID, q.CorrectIndex))
		}
		if q.TimestampRef > episodeSeconds {
			result.addError(fmt.Sprintf("mcq question %s timestamp_ref %.0fs exceeds episode duration %.0fs",
				q.QID, q.TimestampRef, episodeSeconds))
		}
		if q.TimestampRef < 0 {
			result.addError(fmt.Sprintf("mcq question %s timestamp_ref is negative", q.QID))
		}

		if overlap := termOverlap(q, scriptTerms); overlap < v.rubric.MinTermOverlap {
			result.addError(fmt.Sprintf("mcq question %s wording does not match script terms (overlap %.2f)",
				q.QID, overlap))
		}
	}

	for _, id := range spec.ConceptIDs {
		if !answered[id] {
			result.addWarning(fmt.Sprintf("concept %s has no question", id))
		}
	}

	total := float64(count)
	if float64(typeCounts[course.QuestionRecall])/total < v.rubric.MinRecallRatio {
		result.addWarning(fmt.Sprintf("recall questions below %.0f%% of the set", v.rubric.MinRecallRatio*100))
	}
	if float64(typeCounts[course.QuestionConcept])/total < v.rubric.MinConceptRatio {
		result.addWarning(fmt.Sprintf("concept questions below %.0f%% of the set", v.rubric.MinConceptRatio*100))
	}

	return result
}

// termOverlap computes the fraction of significant question and
// option terms present in the script term set.
func termOverlap(q course.Question, scriptTerms map[string]bool) float64 {
	text := q.QuestionText + " " + strings.Join(q.Options, " ")
	terms := termSet(text)
	if len(terms) == 0 {
		return 0
	}
	matched := 0
	for t := range terms {
		if scriptTerms[t] {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}

// termSet lowercases text and keeps alphanumeric terms longer than
// three runes; short function words carry no signal for the
// cross-check.
func termSet(text string) map[string]bool {
	terms := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		if len([]rune(w)) > 3 {
			terms[w] = true
		}
	}
	return terms
}
