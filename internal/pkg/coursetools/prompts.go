package coursetools

import (
	"fmt"
	"strings"
)

// PromptVersion participates in concept cache keys so a prompt change
// invalidates cached extractions.
const PromptVersion = "v3"

// Repair action names. Each error category maps to exactly one action.
const (
	ActionRegenShortScript         = "regen_short_script"
	ActionRegenLongScript          = "regen_long_script"
	ActionRegenToneFix             = "regen_tone_fix"
	ActionRegenMCQSync             = "regen_mcq_sync"
	ActionRegenRemoveHallucination = "regen_remove_hallucination"
	ActionRegenPronunciation       = "regen_pronunciation"
	ActionRegenStructure           = "regen_structure"
	ActionRegenClarity             = "regen_clarity"
)

// First-pass prompt names.
const (
	PromptConceptExtraction = "concept_extraction"
	PromptScriptGeneration  = "script_generation"
	PromptMCQGeneration     = "mcq_generation"
)

// PromptLibrary holds subject-keyed prompt templates with a "default"
// fallback, plus the repair prompt table. It is built once and passed
// explicitly into callers; there is no ambient global lookup.
type PromptLibrary struct {
	Version string

	Subjects            []string
	UnsupportedSubjects []string

	conceptExtraction map[string]string // subject -> template
	script            map[string]string
	mcq               map[string]string
	repair            map[string]string // action name -> template
}

// IsSubjectSupported reports whether audio revision is offered for the
// subject. Heavily symbolic subjects do not translate to audio.
func (l *PromptLibrary) IsSubjectSupported(subject string) bool {
	for _, s := range l.UnsupportedSubjects {
		if strings.EqualFold(s, subject) {
			return false
		}
	}
	return true
}

func lookupWithDefault(m map[string]string, subject string) string {
	if t, ok := m[strings.ToLower(subject)]; ok {
		return t
	}
	return m["default"]
}

// ConceptExtractionPrompt renders the extraction prompt for a chapter.
func (l *PromptLibrary) ConceptExtractionPrompt(subject, gradeBand, chapterText string) string {
	return fmt.Sprintf(lookupWithDefault(l.conceptExtraction, subject), gradeBand, chapterText)
}

// ScriptPrompt renders the first-pass script prompt for one episode.
func (l *PromptLibrary) ScriptPrompt(subject, gradeBand string, targetWords int, conceptBlock, speaker1, speaker2 string) string {
	return fmt.Sprintf(lookupWithDefault(l.script, subject),
		speaker1, speaker2, gradeBand, targetWords, conceptBlock)
}

// MCQPrompt renders the first-pass question prompt for one episode.
func (l *PromptLibrary) MCQPrompt(subject, scriptText, conceptBlock string) string {
	return fmt.Sprintf(lookupWithDefault(l.mcq, subject), conceptBlock, scriptText)
}

// RepairPrompt renders the corrective prompt for one repair action.
// The current artifact and the specific violations are embedded so the
// generator regenerates against concrete feedback.
func (l *PromptLibrary) RepairPrompt(action, artifactJSON string, violations []string) (string, bool) {
	tpl, ok := l.repair[action]
	if !ok {
		return "", false
	}
	return fmt.Sprintf(tpl, strings.Join(violations, "\n- "), artifactJSON), true
}

// HasRepairAction reports whether action has a prompt template.
func (l *PromptLibrary) HasRepairAction(action string) bool {
	_, ok := l.repair[action]
	return ok
}

// DefaultPromptLibrary builds the standard prompt tables.
func DefaultPromptLibrary() *PromptLibrary {
	return &PromptLibrary{
		Version: PromptVersion,
		Subjects: []string{
			"Science", "Physics", "Chemistry", "Biology",
			"History", "Geography", "Civics", "Economics",
		},
		// Subjects whose content is mostly symbolic or exercise-driven
		// and does not survive the audio-only format.
		UnsupportedSubjects: []string{
			"Mathematics", "Algebra", "Geometry",
			"English", "Literature", "Grammar",
		},
		conceptExtraction: map[string]string{
			"default": `You are an experienced teacher preparing a revision course for grade band %s.
Read the chapter below and extract every teachable concept in textbook order.

Return strict JSON:
{
  "concepts": [
    {
      "id": "c1",
      "name": "...",
      "summary": "...",
      "importance": 1-5,
      "difficulty": "easy|medium|hard",
      "estimated_minutes": 0.5-6.0,
      "exam_relevance": ["..."],
      "common_misconceptions": ["..."],
      "memory_hooks": ["..."],
      "source_reference": "pX:lines Y-Z"
    }
  ],
  "graph": [["prerequisite_id", "concept_id"]]
}

Rules:
- ids are stable and unique within the chapter
- every field is required; use [] for empty lists
- the graph must be acyclic and only reference extracted ids
- return only JSON, no explanation

Chapter:
%s`,
			"history": `You are a history teacher preparing a revision course for grade band %s.
Extract every teachable concept in textbook order, keeping events in
chronological narrative order where the chapter presents them that way.

Return strict JSON:
{
  "concepts": [
    {
      "id": "c1",
      "name": "...",
      "summary": "...",
      "importance": 1-5,
      "difficulty": "easy|medium|hard",
      "estimated_minutes": 0.5-6.0,
      "exam_relevance": ["..."],
      "common_misconceptions": ["..."],
      "memory_hooks": ["..."],
      "source_reference": "pX:lines Y-Z"
    }
  ],
  "graph": [["prerequisite_id", "concept_id"]]
}

Return only JSON, no explanation.

Chapter:
%s`,
		},
		script: map[string]string{
			"default": `Write a two-voice revision dialogue between %s and %s for grade band %s students.

Requirements:
- about %d words total, conversational and warm, never lecture-style
- every line is "Speaker: text" with one of the two speaker names
- three sections with ids: hook, core_content, summary
- cover every concept listed below; tag each section with the concept ids it covers
- every factual claim carries a source_reference ("pX:lines Y-Z") or is marked inferred with hedged phrasing ("typically", "often", "generally")

Concepts:
%s

Return strict JSON:
{
  "sections": [
    {"id": "hook", "text": "...", "concept_ids_covered": ["..."], "source_reference": "...", "inferred": false}
  ],
  "word_count": 0,
  "pronunciation_hints": {"term": "phonetic"}
}
Return only JSON.`,
		},
		mcq: map[string]string{
			"default": `Write 3-6 multiple-choice questions for the revision episode below.

Requirements:
- each question has exactly 4 options and one correct answer
- type is one of: recall, concept, understanding, application; at least 40%% recall and 30%% concept
- timestamp_ref is the second in the episode where the answer is discussed
- question and option wording must use terms that appear in the script
- cover these concepts:
%s

Script:
%s

Return strict JSON:
{"questions": [{"qid": "q1", "concept_id": "...", "type": "recall", "question_text": "...", "options": ["a","b","c","d"], "correct_index": 0, "timestamp_ref": 0}]}
Return only JSON.`,
		},
		repair: map[string]string{
			ActionRegenShortScript: `The revision script below failed validation:
- %s

Expand the dialogue with concrete examples and fuller explanations until it meets the minimum word count. Keep every section id, the speaker format, all concept coverage tags and all source references. Return the full corrected JSON artifact only.

Current artifact:
%s`,
			ActionRegenLongScript: `The revision script below failed validation:
- %s

Compress the dialogue by removing repetition and filler until it fits the maximum word count. Keep every section id, the speaker format, all concept coverage tags and all source references. Return the full corrected JSON artifact only.

Current artifact:
%s`,
			ActionRegenToneFix: `The revision script below failed validation:
- %s

Rewrite the flagged passages as natural peer conversation. Remove lecture-voice phrasing and keep every line in "Speaker: text" format. Return the full corrected JSON artifact only.

Current artifact:
%s`,
			ActionRegenMCQSync: `The question set below failed validation:
- %s

Regenerate the questions directly from the script so that counts, timestamps and wording all match the script content. Each question keeps exactly 4 options and one correct answer. Return the full corrected JSON artifact only.

Current artifact:
%s`,
			ActionRegenRemoveHallucination: `The revision script below failed validation:
- %s

For every flagged claim, either attach the correct source reference from the chapter, or mark it inferred and rephrase it with hedged language, or remove it. Do not invent references. Return the full corrected JSON artifact only.

Current artifact:
%s`,
			ActionRegenPronunciation: `The revision script below failed validation:
- %s

Add phonetic pronunciation hints for every flagged term to pronunciation_hints. Do not change the dialogue text. Return the full corrected JSON artifact only.

Current artifact:
%s`,
			ActionRegenStructure: `The revision script below failed validation:
- %s

Reconstruct the missing or incomplete sections so the script contains hook, core_content and summary, and every assigned concept is covered by at least one section. Return the full corrected JSON artifact only.

Current artifact:
%s`,
			ActionRegenClarity: `The revision content below failed validation:
- %s

Revise the content to resolve the listed problems while preserving structure, speaker format and source references. Return the full corrected JSON artifact only.

Current artifact:
%s`,
		},
	}
}
