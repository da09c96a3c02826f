package coursetools

import (
	"context"
	"encoding/json"
	"fmt"

	"revcast/internal/model/course"
)

// LLMContentGenerator implements ContentGenerator over a raw
// LLMProvider. It sends the rendered prompt and parses the combined
// artifact JSON (sections + questions) the repair prompts ask for.
type LLMContentGenerator struct {
	llm LLMProvider
}

// NewLLMContentGenerator creates the generator boundary used by the
// repair orchestrator.
func NewLLMContentGenerator(llm LLMProvider) *LLMContentGenerator {
	return &LLMContentGenerator{llm: llm}
}

// Generate calls the model and parses its output into an artifact
// pair. A malformed response is returned as an error so the caller
// can count it against the retry budget.
func (g *LLMContentGenerator) Generate(ctx context.Context, req *GenerationRequest) (*EpisodeContent, error) {
	if g.llm == nil {
		return nil, fmt.Errorf("llm provider is required")
	}

	raw, err := g.llm.Generate(ctx, req.Prompt, req.Temperature)
	if err != nil {
		return nil, fmt.Errorf("generator call %s: %w", req.PromptType, err)
	}

	content, err := ParseEpisodeContent(raw)
	if err != nil {
		return nil, fmt.Errorf("generator output %s: %w", req.PromptType, err)
	}
	content.ChangeSummary = fmt.Sprintf("regenerated via %s", req.PromptType)
	return content, nil
}

// combinedArtifactJSON is the full artifact shape used by repair
// prompts: script fields plus the question list.
type combinedArtifactJSON struct {
	scriptJSON
	mcqJSON
}

// ParseEpisodeContent parses a combined script+questions response.
func ParseEpisodeContent(raw string) (*EpisodeContent, error) {
	cleaned := CleanJSONContent(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty generator response")
	}

	var parsed combinedArtifactJSON
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("parse generator response: %w", err)
	}
	if len(parsed.Sections) == 0 {
		return nil, fmt.Errorf("generator response contains no sections")
	}
	if len(parsed.Questions) == 0 {
		return nil, fmt.Errorf("generator response contains no questions")
	}

	script := &course.Script{
		Sections:           make([]course.Section, 0, len(parsed.Sections)),
		PronunciationHints: parsed.PronunciationHints,
	}
	for _, s := range parsed.Sections {
		script.Sections = append(script.Sections, course.Section{
			ID:                s.ID,
			Text:              s.Text,
			ConceptIDsCovered: emptyIfNil(s.ConceptIDsCovered),
			SourceReference:   s.SourceReference,
			Inferred:          s.Inferred,
		})
	}
	script.WordCount = NewTextAnalyzer().WordCount(ScriptText(script))

	set := &course.MCQSet{Questions: make([]course.Question, 0, len(parsed.Questions))}
	for i, q := range parsed.Questions {
		qid := q.QID
		if qid == "" {
			qid = fmt.Sprintf("q%d", i+1)
		}
		set.Questions = append(set.Questions, course.Question{
			QID:          qid,
			ConceptID:    q.ConceptID,
			Type:         course.QuestionType(q.Type),
			QuestionText: q.QuestionText,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			TimestampRef: q.TimestampRef,
		})
	}

	return &EpisodeContent{Script: script, MCQs: set}, nil
}
