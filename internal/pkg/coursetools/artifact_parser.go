package coursetools

import (
	"encoding/json"
	"fmt"

	"revcast/internal/model/course"
)

// scriptJSON mirrors the script generation response shape.
type scriptJSON struct {
	Sections []struct {
		ID                string   `json:"id"`
		Text              string   `json:"text"`
		ConceptIDsCovered []string `json:"concept_ids_covered"`
		SourceReference   string   `json:"source_reference"`
		Inferred          bool     `json:"inferred"`
	} `json:"sections"`
	WordCount          int               `json:"word_count"`
	PronunciationHints map[string]string `json:"pronunciation_hints"`
}

// ParseScriptResponse parses an LLM script response into a script
// artifact. The reported word_count is recomputed locally; the model's
// own count is not trusted.
func ParseScriptResponse(jsonContent string) (*course.Script, error) {
	jsonContent = CleanJSONContent(jsonContent)
	if jsonContent == "" {
		return nil, fmt.Errorf("empty script response")
	}

	var parsed scriptJSON
	if err := json.Unmarshal([]byte(jsonContent), &parsed); err != nil {
		return nil, fmt.Errorf("parse script response: %w", err)
	}
	if len(parsed.Sections) == 0 {
		return nil, fmt.Errorf("script response contains no sections")
	}

	script := &course.Script{
		Sections:           make([]course.Section, 0, len(parsed.Sections)),
		PronunciationHints: parsed.PronunciationHints,
	}
	for _, s := range parsed.Sections {
		if s.ID == "" {
			return nil, fmt.Errorf("script section missing id")
		}
		script.Sections = append(script.Sections, course.Section{
			ID:                s.ID,
			Text:              s.Text,
			ConceptIDsCovered: emptyIfNil(s.ConceptIDsCovered),
			SourceReference:   s.SourceReference,
			Inferred:          s.Inferred,
		})
	}

	script.WordCount = NewTextAnalyzer().WordCount(ScriptText(script))
	return script, nil
}

// mcqJSON mirrors the question generation response shape.
type mcqJSON struct {
	Questions []struct {
		QID          string   `json:"qid"`
		ConceptID    string   `json:"concept_id"`
		Type         string   `json:"type"`
		QuestionText string   `json:"question_text"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correct_index"`
		TimestampRef float64  `json:"timestamp_ref"`
	} `json:"questions"`
}

// ParseMCQResponse parses an LLM question response into a question
// set artifact. Structural rubric checks happen later in the
// validator; this only rejects unusable JSON.
func ParseMCQResponse(jsonContent string) (*course.MCQSet, error) {
	jsonContent = CleanJSONContent(jsonContent)
	if jsonContent == "" {
		return nil, fmt.Errorf("empty mcq response")
	}

	var parsed mcqJSON
	if err := json.Unmarshal([]byte(jsonContent), &parsed); err != nil {
		return nil, fmt.Errorf("parse mcq response: %w", err)
	}
	if len(parsed.Questions) == 0 {
		return nil, fmt.Errorf("mcq response contains no questions")
	}

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
	return set, nil
}
