package course

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"revcast/internal/model/course"
	"revcast/internal/pkg/id"
)

// PlanEpisodes partitions the latest concept set into a draft episode
// plan. Any previous plan is marked replaced; a fresh plan document
// and fresh episode records are always created.
func (s *courseService) PlanEpisodes(ctx context.Context, chapterID string) (*course.EpisodePlan, error) {
	ch, err := s.chapterRepo.FindByID(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("failed to find chapter: %w", err)
	}

	set, err := s.conceptSetRepo.FindLatestByChapterID(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("no concept set for chapter, run extraction first: %w", err)
	}

	specs, err := s.planner.Plan(set.Concepts, ch.GradeBand)
	if err != nil {
		// Malformed concept data or a cyclic graph fails the whole
		// chapter; there is nothing episode-level to salvage.
		return nil, err
	}

	if err := s.planRepo.MarkReplacedByChapterID(ctx, chapterID); err != nil {
		return nil, fmt.Errorf("failed to replace previous plans: %w", err)
	}

	plan := &course.EpisodePlan{
		ID:        id.New(),
		ChapterID: chapterID,
		GradeBand: ch.GradeBand,
		Episodes:  specs,
		Status:    course.PlanStatusDraft,
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	episodes := make([]*course.Episode, 0, len(specs))
	for _, spec := range specs {
		episodes = append(episodes, &course.Episode{
			ID:                    id.New(),
			ChapterID:             chapterID,
			PlanID:                plan.ID,
			EpisodeNumber:         spec.EpisodeNumber,
			Title:                 spec.Title,
			ConceptIDs:            spec.ConceptIDs,
			TargetDurationMinutes: spec.TargetDurationMinutes,
			TargetWords:           spec.TargetWords,
			State:                 course.StatePlanned,
			ContentVersion:        1,
			RepairLog:             []course.RepairAttempt{},
		})
	}
	if err := s.episodeRepo.CreateMany(ctx, episodes); err != nil {
		return nil, fmt.Errorf("failed to create episodes: %w", err)
	}

	log.Info().
		Str("chapter_id", chapterID).
		Str("plan_id", plan.ID).
		Int("episodes", len(specs)).
		Msg("episode plan created")

	return plan, nil
}

// GetPlan returns the latest plan for a chapter.
func (s *courseService) GetPlan(ctx context.Context, chapterID string) (*course.EpisodePlan, error) {
	return s.planRepo.FindLatestByChapterID(ctx, chapterID)
}

// ApprovePlan approves a draft plan and moves its episodes to
// plan_approved so content generation can pick them up.
func (s *courseService) ApprovePlan(ctx context.Context, planID string) error {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return fmt.Errorf("failed to find plan: %w", err)
	}
	if plan.Status != course.PlanStatusDraft {
		return fmt.Errorf("plan %s is %s, only draft plans can be approved", planID, plan.Status)
	}

	if err := s.planRepo.UpdateStatus(ctx, planID, course.PlanStatusApproved); err != nil {
		return fmt.Errorf("failed to approve plan: %w", err)
	}

	episodes, err := s.episodeRepo.FindByPlanID(ctx, planID)
	if err != nil {
		return fmt.Errorf("failed to load plan episodes: %w", err)
	}
	for _, e := range episodes {
		if !e.State.CanTransitionTo(course.StatePlanApproved) {
			continue
		}
		if err := s.episodeRepo.UpdateState(ctx, e.ID, course.StatePlanApproved); err != nil {
			return fmt.Errorf("failed to update episode %s: %w", e.ID, err)
		}
	}

	log.Info().
		Str("plan_id", planID).
		Str("chapter_id", plan.ChapterID).
		Int("episodes", len(episodes)).
		Msg("episode plan approved")

	return nil
}
