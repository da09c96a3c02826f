package coursetools

import (
	"encoding/json"
	"fmt"

	"revcast/internal/model/course"
)

// conceptExtractionJSON mirrors the extraction response shape. The
// structs are only used for parsing; validated data is converted to
// course.Concept values.
type conceptExtractionJSON struct {
	Concepts []conceptJSON `json:"concepts"`
	Graph    [][]string    `json:"graph"` // [prerequisite_id, concept_id] pairs
}

type conceptJSON struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Summary              string   `json:"summary"`
	Importance           *int     `json:"importance"`
	Difficulty           string   `json:"difficulty"`
	EstimatedMinutes     *float64 `json:"estimated_minutes"`
	ExamRelevance        []string `json:"exam_relevance"`
	CommonMisconceptions []string `json:"common_misconceptions"`
	MemoryHooks          []string `json:"memory_hooks"`
	SourceReference      string   `json:"source_reference"`
}

// ParseConceptExtraction parses and validates an LLM concept
// extraction response. The returned concepts preserve the response
// order, which is the textbook order the planner relies on.
//
// Importance and EstimatedMinutes stay pointers end to end: a missing
// field is reported here instead of being patched with a default, so a
// legitimate minimum value is never mistaken for "unset".
func ParseConceptExtraction(jsonContent string) ([]course.Concept, error) {
	jsonContent = CleanJSONContent(jsonContent)
	if jsonContent == "" {
		return nil, fmt.Errorf("empty extraction response")
	}

	var parsed conceptExtractionJSON
	if err := json.Unmarshal([]byte(jsonContent), &parsed); err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}
	if len(parsed.Concepts) == 0 {
		return nil, fmt.Errorf("extraction response contains no concepts")
	}

	byID := make(map[string]bool, len(parsed.Concepts))
	for _, c := range parsed.Concepts {
		if c.ID == "" || c.Name == "" {
			return nil, fmt.Errorf("concept missing id or name")
		}
		if byID[c.ID] {
			return nil, fmt.Errorf("duplicate concept id %q", c.ID)
		}
		byID[c.ID] = true

		if c.Importance == nil {
			return nil, fmt.Errorf("concept %q missing importance", c.ID)
		}
		if *c.Importance < 1 || *c.Importance > 5 {
			return nil, fmt.Errorf("concept %q importance %d out of range 1-5", c.ID, *c.Importance)
		}
		if c.EstimatedMinutes == nil {
			return nil, fmt.Errorf("concept %q missing estimated_minutes", c.ID)
		}
		if *c.EstimatedMinutes <= 0 {
			return nil, fmt.Errorf("concept %q estimated_minutes must be positive", c.ID)
		}
		if !course.Difficulty(c.Difficulty).IsValid() {
			return nil, fmt.Errorf("concept %q has unknown difficulty %q", c.ID, c.Difficulty)
		}
	}

	// Fold graph pairs into per-concept prerequisite lists.
	prereqs := make(map[string][]string)
	for _, pair := range parsed.Graph {
		if len(pair) != 2 {
			return nil, fmt.Errorf("graph entry must be a [prerequisite, concept] pair")
		}
		from, to := pair[0], pair[1]
		if !byID[from] || !byID[to] {
			return nil, fmt.Errorf("graph references unknown concept: [%s, %s]", from, to)
		}
		if from == to {
			return nil, fmt.Errorf("concept %q lists itself as prerequisite", to)
		}
		prereqs[to] = append(prereqs[to], from)
	}

	concepts := make([]course.Concept, 0, len(parsed.Concepts))
	for _, c := range parsed.Concepts {
		importance := *c.Importance
		minutes := *c.EstimatedMinutes
		concepts = append(concepts, course.Concept{
			ID:                   c.ID,
			Name:                 c.Name,
			Summary:              c.Summary,
			Importance:           &importance,
			Difficulty:           course.Difficulty(c.Difficulty),
			EstimatedMinutes:     &minutes,
			Prerequisites:        prereqs[c.ID],
			ExamRelevance:        emptyIfNil(c.ExamRelevance),
			CommonMisconceptions: emptyIfNil(c.CommonMisconceptions),
			MemoryHooks:          emptyIfNil(c.MemoryHooks),
			SourceReference:      c.SourceReference,
		})
	}
	return concepts, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
