package coursetools

import (
	"strings"

	"revcast/internal/model/course"
)

// Shared fixtures for the planner, validator and repair tests. The
// dialogue vocabulary is deliberately reused by the question fixtures
// so the script term cross-check passes on content that should pass.

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func testConcept(id string, minutes float64, prereqs ...string) course.Concept {
	return course.Concept{
		ID:               id,
		Name:             strings.ToUpper(id),
		Summary:          "summary of " + id,
		Importance:       intPtr(3),
		Difficulty:       course.DifficultyMedium,
		EstimatedMinutes: floatPtr(minutes),
		Prerequisites:    prereqs,
		SourceReference:  "p12:lines 1-10",
	}
}

// Both lines are 15 words including the speaker tag.
var testDialogueLines = []string{
	"Maya: Plants absorb sunlight energy and the chlorophyll converts water into glucose and oxygen molecules.",
	"Rohan: The plants store glucose energy and release oxygen while water moves through each leaf.",
}

func dialogueBlock(lines int) string {
	out := make([]string, 0, lines)
	for i := 0; i < lines; i++ {
		out = append(out, testDialogueLines[i%2])
	}
	return strings.Join(out, "\n")
}

// testEpisodeSpec targets 7 minutes, so questions may reference up to
// 420 seconds into the episode.
func testEpisodeSpec() *course.EpisodeSpec {
	return &course.EpisodeSpec{
		EpisodeNumber:         1,
		Title:                 "Photosynthesis",
		ConceptIDs:            []string{"c1", "c2"},
		TargetDurationMinutes: 7,
		EstimatedMinutes:      6,
		TargetWords:           1050,
	}
}

// scriptWithCoreLines builds a fully tagged three-section script. The
// hook and summary hold 4 lines each, so the total word count is
// (coreLines + 8) * 15.
func scriptWithCoreLines(coreLines int) *course.Script {
	return &course.Script{
		ID:        "script-1",
		EpisodeID: "ep-1",
		Version:   1,
		Sections: []course.Section{
			{
				ID:                "hook",
				Text:              dialogueBlock(4),
				ConceptIDsCovered: []string{},
				SourceReference:   "p12:lines 1-8",
			},
			{
				ID:                "core_content",
				Text:              dialogueBlock(coreLines),
				ConceptIDsCovered: []string{"c1", "c2"},
				SourceReference:   "p12:lines 9-44",
			},
			{
				ID:                "summary",
				Text:              dialogueBlock(4),
				ConceptIDsCovered: []string{"c1", "c2"},
				SourceReference:   "p13:lines 1-6",
			},
		},
	}
}

// validScript lands at 510 words, inside the 450-1100 window.
func validScript() *course.Script {
	return scriptWithCoreLines(26)
}

// shortScript lands at exactly 300 words.
func shortScript() *course.Script {
	return scriptWithCoreLines(12)
}

// longScript lands at 1110 words, just above the maximum.
func longScript() *course.Script {
	return scriptWithCoreLines(66)
}

func validMCQSet() *course.MCQSet {
	return &course.MCQSet{
		ID:        "mcq-1",
		EpisodeID: "ep-1",
		Version:   1,
		Questions: []course.Question{
			{
				QID:          "q1",
				ConceptID:    "c1",
				Type:         course.QuestionRecall,
				QuestionText: "Plants absorb sunlight energy into glucose molecules",
				Options:      []string{"glucose", "oxygen", "water", "sunlight"},
				CorrectIndex: 0,
				TimestampRef: 30,
			},
			{
				QID:          "q2",
				ConceptID:    "c1",
				Type:         course.QuestionConcept,
				QuestionText: "The chlorophyll converts water into oxygen molecules",
				Options:      []string{"chlorophyll", "glucose", "water", "energy"},
				CorrectIndex: 0,
				TimestampRef: 120,
			},
			{
				QID:          "q3",
				ConceptID:    "c2",
				Type:         course.QuestionRecall,
				QuestionText: "The plants store glucose energy",
				Options:      []string{"glucose", "water", "oxygen", "sunlight"},
				CorrectIndex: 0,
				TimestampRef: 210,
			},
			{
				QID:          "q4",
				ConceptID:    "c2",
				Type:         course.QuestionConcept,
				QuestionText: "The plants release oxygen while water moves through each leaf",
				Options:      []string{"oxygen", "glucose", "energy", "chlorophyll"},
				CorrectIndex: 0,
				TimestampRef: 330,
			},
		},
	}
}

func validContent() *EpisodeContent {
	return &EpisodeContent{Script: validScript(), MCQs: validMCQSet()}
}
