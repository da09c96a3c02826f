package course

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"revcast/internal/model/course"
	"revcast/internal/pkg/coursetools"
	"revcast/internal/pkg/id"
)

// GenerateContentForChapter generates content for every pending
// episode of the chapter's approved plan. Episodes run concurrently
// under the configured cap; one episode exhausting its repair budget
// parks that episode in needs_review without failing the others.
func (s *courseService) GenerateContentForChapter(ctx context.Context, chapterID string) error {
	startTime := time.Now()

	ch, err := s.chapterRepo.FindByID(ctx, chapterID)
	if err != nil {
		return fmt.Errorf("failed to find chapter: %w", err)
	}

	plan, err := s.planRepo.FindLatestByChapterID(ctx, chapterID)
	if err != nil {
		return fmt.Errorf("failed to find plan: %w", err)
	}
	if plan.Status != course.PlanStatusApproved {
		return fmt.Errorf("plan %s is %s, approve it before generating content", plan.ID, plan.Status)
	}

	episodes, err := s.episodeRepo.FindByPlanID(ctx, plan.ID)
	if err != nil {
		return fmt.Errorf("failed to load episodes: %w", err)
	}

	conceptsByID, err := s.conceptIndex(ctx, chapterID)
	if err != nil {
		return err
	}

	pending := make([]*course.Episode, 0, len(episodes))
	for _, e := range episodes {
		if e.State == course.StatePlanApproved || e.State == course.StateContentGenerating {
			pending = append(pending, e)
		}
	}
	if len(pending) == 0 {
		return fmt.Errorf("no episodes pending content generation")
	}

	log.Info().
		Str("chapter_id", chapterID).
		Str("plan_id", plan.ID).
		Int("pending", len(pending)).
		Int("concurrency", s.pipeline.EpisodeConcurrency).
		Msg("starting chapter content generation")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.pipeline.EpisodeConcurrency)
	for _, e := range pending {
		episode := e
		g.Go(func() error {
			if err := s.generateEpisodeContent(gctx, ch, episode, conceptsByID); err != nil {
				// Per-episode failures are recorded on the episode
				// itself; they never abort sibling episodes.
				log.Error().Err(err).
					Str("episode_id", episode.ID).
					Int("episode_number", episode.EpisodeNumber).
					Msg("episode content generation failed")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().
		Str("chapter_id", chapterID).
		Dur("duration", time.Since(startTime)).
		Msg("chapter content generation finished")

	return nil
}

// GenerateContentForEpisode generates content for a single episode.
func (s *courseService) GenerateContentForEpisode(ctx context.Context, episodeID string) error {
	episode, err := s.episodeRepo.FindByID(ctx, episodeID)
	if err != nil {
		return fmt.Errorf("failed to find episode: %w", err)
	}
	ch, err := s.chapterRepo.FindByID(ctx, episode.ChapterID)
	if err != nil {
		return fmt.Errorf("failed to find chapter: %w", err)
	}
	conceptsByID, err := s.conceptIndex(ctx, episode.ChapterID)
	if err != nil {
		return err
	}
	return s.generateEpisodeContent(ctx, ch, episode, conceptsByID)
}

// generateEpisodeContent runs the first-pass generation and the
// bounded repair loop for one episode, then persists the outcome.
func (s *courseService) generateEpisodeContent(
	ctx context.Context,
	ch *course.Chapter,
	episode *course.Episode,
	conceptsByID map[string]course.Concept,
) error {
	if episode.State != course.StateContentGenerating {
		if !episode.State.CanTransitionTo(course.StateContentGenerating) {
			return fmt.Errorf("episode %s is %s, content generation not allowed", episode.ID, episode.State)
		}
		if err := s.episodeRepo.UpdateState(ctx, episode.ID, course.StateContentGenerating); err != nil {
			return fmt.Errorf("failed to update episode state: %w", err)
		}
	}

	spec := episodeSpecOf(episode)
	conceptBlock, err := s.conceptBlock(episode, conceptsByID)
	if err != nil {
		return s.failEpisode(ctx, episode, err)
	}

	content, err := s.firstPassContent(ctx, ch, episode, conceptBlock)
	if err != nil {
		return s.failEpisode(ctx, episode, err)
	}

	outcome := s.orchestrator.RepairWithRetries(ctx, content, spec, ch.ID, ch.GradeBand)

	version := episode.ContentVersion
	if err := s.persistContent(ctx, episode.ID, version, outcome.Content); err != nil {
		return err
	}

	state := course.StateContentGenerated
	if outcome.RequiresTeacherReview {
		state = course.StateNeedsReview
	}
	if err := s.episodeRepo.UpdateContent(ctx, episode.ID, state, version, outcome.RepairLog, outcome.ErrorReport); err != nil {
		return fmt.Errorf("failed to record generation outcome: %w", err)
	}

	log.Info().
		Str("episode_id", episode.ID).
		Int("episode_number", episode.EpisodeNumber).
		Int("version", version).
		Str("status", string(outcome.FinalStatus)).
		Int("repair_attempts", len(outcome.RepairLog)).
		Msg("episode content generation completed")

	if outcome.RequiresTeacherReview {
		return fmt.Errorf("episode %d requires teacher review after exhausted repairs", episode.EpisodeNumber)
	}
	return nil
}

// firstPassContent renders the script and question prompts and parses
// the model output into an artifact pair.
func (s *courseService) firstPassContent(
	ctx context.Context,
	ch *course.Chapter,
	episode *course.Episode,
	conceptBlock string,
) (*coursetools.EpisodeContent, error) {
	if episode.RevisionFeedback != "" {
		conceptBlock += "\n\nReviewer feedback to address:\n" + episode.RevisionFeedback
	}

	scriptPrompt := s.prompts.ScriptPrompt(
		ch.Subject, ch.GradeBand, episode.TargetWords, conceptBlock,
		s.pipeline.Speaker1Name, s.pipeline.Speaker2Name)
	rawScript, err := s.llm.Generate(ctx, scriptPrompt, s.aiOptions.Temperature)
	if err != nil {
		return nil, fmt.Errorf("script generation call failed: %w", err)
	}
	script, err := coursetools.ParseScriptResponse(rawScript)
	if err != nil {
		return nil, fmt.Errorf("script generation parse failed: %w", err)
	}

	mcqPrompt := s.prompts.MCQPrompt(ch.Subject, coursetools.ScriptText(script), conceptBlock)
	rawMCQ, err := s.llm.Generate(ctx, mcqPrompt, s.aiOptions.Temperature)
	if err != nil {
		return nil, fmt.Errorf("question generation call failed: %w", err)
	}
	mcqs, err := coursetools.ParseMCQResponse(rawMCQ)
	if err != nil {
		return nil, fmt.Errorf("question generation parse failed: %w", err)
	}

	return &coursetools.EpisodeContent{Script: script, MCQs: mcqs}, nil
}

// persistContent writes the script and question set as a new version.
func (s *courseService) persistContent(ctx context.Context, episodeID string, version int, content *coursetools.EpisodeContent) error {
	if content == nil || content.Script == nil || content.MCQs == nil {
		return fmt.Errorf("no content to persist for episode %s", episodeID)
	}

	script := *content.Script
	script.ID = id.New()
	script.EpisodeID = episodeID
	script.Version = version
	if err := s.scriptRepo.Create(ctx, &script); err != nil {
		return fmt.Errorf("failed to store script: %w", err)
	}

	set := *content.MCQs
	set.ID = id.New()
	set.EpisodeID = episodeID
	set.Version = version
	if err := s.mcqSetRepo.Create(ctx, &set); err != nil {
		return fmt.Errorf("failed to store question set: %w", err)
	}
	return nil
}

// failEpisode parks an episode in needs_review when generation fails
// before the repair loop can produce a report of its own.
func (s *courseService) failEpisode(ctx context.Context, episode *course.Episode, cause error) error {
	report := &course.ErrorReport{
		ChapterID:       episode.ChapterID,
		EpisodeNumber:   episode.EpisodeNumber,
		FailedStage:     "content",
		Categories:      []string{string(coursetools.CategoryOther)},
		Errors:          []string{cause.Error()},
		Attempts:        []course.RepairAttempt{},
		SuggestedAction: course.SuggestedActionTeacherReview,
		CreatedAt:       time.Now(),
	}
	if err := s.episodeRepo.UpdateContent(ctx, episode.ID, course.StateNeedsReview, episode.ContentVersion, nil, report); err != nil {
		log.Error().Err(err).Str("episode_id", episode.ID).Msg("failed to record episode failure")
	}
	return cause
}

// conceptIndex loads the chapter's latest concept set keyed by id.
func (s *courseService) conceptIndex(ctx context.Context, chapterID string) (map[string]course.Concept, error) {
	set, err := s.conceptSetRepo.FindLatestByChapterID(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load concept set: %w", err)
	}
	index := make(map[string]course.Concept, len(set.Concepts))
	for _, c := range set.Concepts {
		index[c.ID] = c
	}
	return index, nil
}

// conceptBlock renders the episode's assigned concepts as a JSON block
// for prompt embedding.
func (s *courseService) conceptBlock(episode *course.Episode, conceptsByID map[string]course.Concept) (string, error) {
	concepts := make([]course.Concept, 0, len(episode.ConceptIDs))
	for _, cid := range episode.ConceptIDs {
		c, ok := conceptsByID[cid]
		if !ok {
			return "", fmt.Errorf("episode %d references unknown concept %s", episode.EpisodeNumber, cid)
		}
		concepts = append(concepts, c)
	}
	data, err := json.MarshalIndent(concepts, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render concept block: %w", err)
	}
	return string(data), nil
}

// episodeSpecOf rebuilds the planner spec view of a stored episode for
// the validators.
func episodeSpecOf(e *course.Episode) *course.EpisodeSpec {
	return &course.EpisodeSpec{
		EpisodeNumber:         e.EpisodeNumber,
		Title:                 e.Title,
		ConceptIDs:            e.ConceptIDs,
		TargetDurationMinutes: e.TargetDurationMinutes,
		TargetWords:           e.TargetWords,
	}
}
