package coursetools

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"revcast/internal/model/course"
)

// WordsPerMinute is the assumed spoken pace used to derive target word
// counts from target durations.
const WordsPerMinute = 150

// Flexibility band around the grade-band duration target.
const (
	durationFlexLow  = 0.7
	durationFlexHigh = 1.3
	// A trailing episode shorter than this fraction of target is
	// merged into the previous one.
	trailingMergeThreshold = 0.5
)

// PlanningError reports malformed concept data or a cyclic
// prerequisite graph. It aborts the whole-chapter operation and is
// never retried.
type PlanningError struct {
	Reason string
}

func (e *PlanningError) Error() string {
	return "planning failed: " + e.Reason
}

// gradeBandTargets maps school grades to the per-episode spoken
// duration target in minutes.
var gradeBandTargets = []struct {
	minGrade, maxGrade int
	minutes            float64
}{
	{1, 2, 4},
	{3, 5, 5},
	{6, 8, 7},
	{9, 10, 8},
	{11, 12, 10},
}

// Planner partitions a chapter's concepts into episodes bounded by a
// grade-band duration window while preserving textbook order.
type Planner struct {
	wordsPerMinute int
}

// NewPlanner creates a planner with the standard spoken pace.
func NewPlanner() *Planner {
	return &Planner{wordsPerMinute: WordsPerMinute}
}

// TargetMinutes resolves the per-episode duration target for a grade
// band such as "6-8" or a single grade such as "7".
func (p *Planner) TargetMinutes(gradeBand string) (float64, error) {
	first := gradeBand
	if i := strings.IndexAny(gradeBand, "-–"); i >= 0 {
		first = gradeBand[:i]
	}
	grade, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, &PlanningError{Reason: fmt.Sprintf("unrecognized grade band %q", gradeBand)}
	}
	for _, band := range gradeBandTargets {
		if grade >= band.minGrade && grade <= band.maxGrade {
			return band.minutes, nil
		}
	}
	return 0, &PlanningError{Reason: fmt.Sprintf("grade %d outside supported bands", grade)}
}

// Plan produces the episode partition for one chapter.
//
// The concept list must carry explicit importance and
// estimated_minutes on every entry; absent fields fail planning
// instead of being defaulted. Concepts are ordered by a stable
// topological sort that breaks ties by textbook position, so whenever
// prerequisites already agree with textbook order the original order
// is preserved exactly.
func (p *Planner) Plan(concepts []course.Concept, gradeBand string) ([]course.EpisodeSpec, error) {
	if len(concepts) == 0 {
		return nil, &PlanningError{Reason: "no concepts to plan"}
	}

	for _, c := range concepts {
		if c.Importance == nil {
			return nil, &PlanningError{Reason: fmt.Sprintf("concept %q missing importance", c.ID)}
		}
		if c.EstimatedMinutes == nil {
			return nil, &PlanningError{Reason: fmt.Sprintf("concept %q missing estimated_minutes", c.ID)}
		}
		if *c.EstimatedMinutes <= 0 {
			return nil, &PlanningError{Reason: fmt.Sprintf("concept %q estimated_minutes must be positive", c.ID)}
		}
	}

	target, err := p.TargetMinutes(gradeBand)
	if err != nil {
		return nil, err
	}

	ordered, err := topologicalOrder(concepts)
	if err != nil {
		return nil, err
	}

	episodes := p.partition(ordered, target)

	specs := make([]course.EpisodeSpec, 0, len(episodes))
	for i, group := range episodes {
		est := 0.0
		ids := make([]string, 0, len(group))
		for _, c := range group {
			est += *c.EstimatedMinutes
			ids = append(ids, c.ID)
		}

		// A single concept longer than the flexibility band keeps its
		// own duration; the overrun is accepted rather than splitting
		// the concept.
		duration := target
		if len(group) == 1 && est > target*durationFlexHigh {
			duration = est
		}

		specs = append(specs, course.EpisodeSpec{
			EpisodeNumber:         i + 1,
			Title:                 episodeTitle(group),
			ConceptIDs:            ids,
			TargetDurationMinutes: duration,
			EstimatedMinutes:      est,
			TargetWords:           int(math.Round(duration * float64(p.wordsPerMinute))),
			Rationale:             episodeRationale(group, target),
		})
	}
	return specs, nil
}

// partition walks the ordered concepts once, closing episodes at hard
// duration limits or at natural boundaries inside the flexibility
// band. The trailing episode is merged back when it would come out
// near-empty.
func (p *Planner) partition(ordered []course.Concept, target float64) [][]course.Concept {
	var episodes [][]course.Concept
	var current []course.Concept
	acc := 0.0

	for i, c := range ordered {
		minutes := *c.EstimatedMinutes

		if len(current) > 0 {
			exceeds := acc+minutes > target*durationFlexHigh
			inBand := acc >= target*durationFlexLow && acc <= target*durationFlexHigh
			if exceeds || (inBand && !hasPrereqIn(c, current)) {
				episodes = append(episodes, current)
				current = nil
				acc = 0
			}
		}

		current = append(current, ordered[i])
		acc += minutes
	}
	if len(current) > 0 {
		episodes = append(episodes, current)
	}

	if len(episodes) > 1 {
		last := episodes[len(episodes)-1]
		total := 0.0
		for _, c := range last {
			total += *c.EstimatedMinutes
		}
		if total < target*trailingMergeThreshold {
			prev := len(episodes) - 2
			episodes[prev] = append(episodes[prev], last...)
			episodes = episodes[:len(episodes)-1]
		}
	}
	return episodes
}

// hasPrereqIn reports whether c lists any concept in group as a
// prerequisite.
func hasPrereqIn(c course.Concept, group []course.Concept) bool {
	for _, p := range c.Prerequisites {
		for _, g := range group {
			if g.ID == p {
				return true
			}
		}
	}
	return false
}

// topologicalOrder sorts concepts by prerequisites using Kahn's
// algorithm, always picking the ready concept with the smallest
// textbook index so ties preserve textbook order.
func topologicalOrder(concepts []course.Concept) ([]course.Concept, error) {
	index := make(map[string]int, len(concepts))
	for i, c := range concepts {
		index[c.ID] = i
	}

	indegree := make([]int, len(concepts))
	dependents := make(map[string][]int)
	for i, c := range concepts {
		for _, p := range c.Prerequisites {
			if _, ok := index[p]; !ok {
				return nil, &PlanningError{Reason: fmt.Sprintf("concept %q references unknown prerequisite %q", c.ID, p)}
			}
			indegree[i]++
			dependents[p] = append(dependents[p], i)
		}
	}

	ordered := make([]course.Concept, 0, len(concepts))
	placed := make([]bool, len(concepts))
	for len(ordered) < len(concepts) {
		next := -1
		for i := range concepts {
			if !placed[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, &PlanningError{Reason: "prerequisite graph contains a cycle"}
		}
		placed[next] = true
		ordered = append(ordered, concepts[next])
		for _, d := range dependents[concepts[next].ID] {
			indegree[d]--
		}
	}
	return ordered, nil
}

func episodeTitle(group []course.Concept) string {
	if len(group) == 1 {
		return group[0].Name
	}
	return group[0].Name + " to " + group[len(group)-1].Name
}

func episodeRationale(group []course.Concept, target float64) string {
	if len(group) == 1 {
		if *group[0].EstimatedMinutes > target*durationFlexHigh {
			return fmt.Sprintf("%s alone needs %.1f minutes and is kept whole in its own episode", group[0].Name, *group[0].EstimatedMinutes)
		}
		return fmt.Sprintf("%s stands alone at a natural boundary", group[0].Name)
	}
	for _, c := range group {
		if hasPrereqIn(c, group) {
			return fmt.Sprintf("groups a prerequisite chain of %d concepts ending at %s", len(group), group[len(group)-1].Name)
		}
	}
	return fmt.Sprintf("groups %d adjacent concepts to balance episode length around the %.0f minute target", len(group), target)
}
