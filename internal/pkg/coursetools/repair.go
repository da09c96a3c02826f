package coursetools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"revcast/internal/model/course"
)

// Fixed repair constants. Temperature is pinned to zero so repeated
// repairs of identical input are reproducible.
const (
	DefaultMaxRepairAttempts = 3
	RepairTemperature        = 0.0
)

// RepairStatus is the final status of one repair run.
type RepairStatus string

const (
	RepairStatusNoRepairNeeded       RepairStatus = "no_repair_needed"
	RepairStatusRepairedSuccessfully RepairStatus = "repaired_successfully"
	RepairStatusExhausted            RepairStatus = "repair_exhausted"
)

// RepairOutcome is the structured result of a repair run. Validation
// failure is data, not an error: the orchestrator always returns an
// outcome, and an unrepairable artifact surfaces as an ErrorReport
// with RequiresTeacherReview set.
type RepairOutcome struct {
	Success               bool
	FinalStatus           RepairStatus
	Content               *EpisodeContent
	RepairLog             []course.RepairAttempt
	ErrorReport           *course.ErrorReport
	RequiresTeacherReview bool
}

// RepairOrchestrator drives the bounded validate-categorize-repair
// loop for one episode's content.
type RepairOrchestrator struct {
	generator       ContentGenerator
	prompts         *PromptLibrary
	scriptValidator *ScriptValidator
	mcqValidator    *MCQValidator
	maxAttempts     int
}

// NewRepairOrchestrator creates a repair orchestrator.
func NewRepairOrchestrator(
	generator ContentGenerator,
	prompts *PromptLibrary,
	scriptValidator *ScriptValidator,
	mcqValidator *MCQValidator,
	maxAttempts int,
) *RepairOrchestrator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxRepairAttempts
	}
	return &RepairOrchestrator{
		generator:       generator,
		prompts:         prompts,
		scriptValidator: scriptValidator,
		mcqValidator:    mcqValidator,
		maxAttempts:     maxAttempts,
	}
}

// ValidateContent runs the script and question rubrics over one
// artifact pair and merges the results.
func (o *RepairOrchestrator) ValidateContent(content *EpisodeContent, spec *course.EpisodeSpec, gradeBand string) *ValidationResult {
	result := o.scriptValidator.Validate(content.Script, spec, gradeBand)
	result.Merge(o.mcqValidator.Validate(content.MCQs, content.Script, spec))
	return result
}

// RepairWithRetries validates content and repairs it until it passes
// or the attempt budget runs out.
//
// The loop is idempotent: already-valid content returns immediately
// with no generator calls. Each iteration categorizes the current
// errors, invokes exactly one fixed repair action per category, and
// skips any (category, error set) pair it has attempted before so two
// oscillating error states cannot loop forever. Generator failures
// count against the same budget as validation failures. When the
// budget is exhausted the caller receives an error report instead of
// an exception.
func (o *RepairOrchestrator) RepairWithRetries(
	ctx context.Context,
	content *EpisodeContent,
	spec *course.EpisodeSpec,
	chapterID, gradeBand string,
) *RepairOutcome {
	outcome := &RepairOutcome{
		Content:   content,
		RepairLog: make([]course.RepairAttempt, 0),
	}

	result := o.ValidateContent(content, spec, gradeBand)
	if result.IsValid {
		outcome.Success = true
		outcome.FinalStatus = RepairStatusNoRepairNeeded
		return outcome
	}

	attemptedKeys := make(map[string]bool)

	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		categorized := Categorize(result.Errors)

		anySucceeded := false
		for _, cat := range CategoryOrder {
			errs, ok := categorized[cat]
			if !ok {
				continue
			}

			key := dedupKey(cat, errs)
			if attemptedKeys[key] {
				outcome.RepairLog = append(outcome.RepairLog, course.RepairAttempt{
					Attempt:       attempt,
					Category:      string(cat),
					Action:        "skipped_duplicate",
					Success:       false,
					ChangeSummary: "identical error set already attempted",
					CreatedAt:     time.Now(),
				})
				continue
			}
			attemptedKeys[key] = true

			action := RepairActionFor(cat, errs)
			repaired, err := o.invokeRepair(ctx, action, outcome.Content, errs)
			if err != nil {
				outcome.RepairLog = append(outcome.RepairLog, course.RepairAttempt{
					Attempt:       attempt,
					Category:      string(cat),
					Action:        action,
					Success:       false,
					ChangeSummary: fmt.Sprintf("generator call failed: %v", err),
					CreatedAt:     time.Now(),
				})
				continue
			}

			// Atomic replace: the prior artifact pair is discarded
			// wholesale, never patched.
			outcome.Content = repaired
			anySucceeded = true
			outcome.RepairLog = append(outcome.RepairLog, course.RepairAttempt{
				Attempt:       attempt,
				Category:      string(cat),
				Action:        action,
				Success:       true,
				ChangeSummary: repaired.ChangeSummary,
				CreatedAt:     time.Now(),
			})
		}

		if !anySucceeded {
			// Nothing changed, so revalidating cannot pass.
			break
		}

		result = o.ValidateContent(outcome.Content, spec, gradeBand)
		if result.IsValid {
			outcome.Success = true
			outcome.FinalStatus = RepairStatusRepairedSuccessfully
			return outcome
		}
	}

	outcome.FinalStatus = RepairStatusExhausted
	outcome.RequiresTeacherReview = true
	outcome.ErrorReport = buildErrorReport(chapterID, spec.EpisodeNumber, "content", result.Errors, outcome.RepairLog)
	return outcome
}

// invokeRepair renders the corrective prompt and calls the generator
// with deterministic parameters.
func (o *RepairOrchestrator) invokeRepair(ctx context.Context, action string, content *EpisodeContent, violations []string) (*EpisodeContent, error) {
	artifactJSON, err := marshalArtifact(content)
	if err != nil {
		return nil, err
	}
	prompt, ok := o.prompts.RepairPrompt(action, artifactJSON, violations)
	if !ok {
		return nil, fmt.Errorf("no repair prompt for action %s", action)
	}
	repaired, err := o.generator.Generate(ctx, &GenerationRequest{
		PromptType:  action,
		Prompt:      prompt,
		Temperature: RepairTemperature,
	})
	if err != nil {
		return nil, err
	}
	if repaired == nil || repaired.Script == nil || repaired.MCQs == nil {
		return nil, fmt.Errorf("repair action %s returned incomplete content", action)
	}
	return repaired, nil
}

func marshalArtifact(content *EpisodeContent) (string, error) {
	data, err := json.Marshal(map[string]any{
		"sections":            content.Script.Sections,
		"word_count":          content.Script.WordCount,
		"pronunciation_hints": content.Script.PronunciationHints,
		"questions":           content.MCQs.Questions,
	})
	if err != nil {
		return "", fmt.Errorf("marshal artifact: %w", err)
	}
	return string(data), nil
}

// dedupKey identifies one (category, error set) combination. The
// error strings are sorted so ordering differences do not defeat the
// duplicate check.
func dedupKey(cat Category, errs []string) string {
	sorted := make([]string, len(errs))
	copy(sorted, errs)
	sort.Strings(sorted)
	return string(cat) + "|" + strings.Join(sorted, "|")
}

func buildErrorReport(chapterID string, episodeNumber int, stage string, errors []string, attempts []course.RepairAttempt) *course.ErrorReport {
	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, e := range errors {
		cat := string(categorizeOne(e))
		if !seen[cat] {
			seen[cat] = true
			categories = append(categories, cat)
		}
	}
	return &course.ErrorReport{
		ChapterID:       chapterID,
		EpisodeNumber:   episodeNumber,
		FailedStage:     stage,
		Categories:      categories,
		Errors:          errors,
		Attempts:        attempts,
		SuggestedAction: course.SuggestedActionTeacherReview,
		CreatedAt:       time.Now(),
	}
}
