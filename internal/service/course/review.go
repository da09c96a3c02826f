package course

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"revcast/internal/model/course"
)

// ApproveContent approves an episode's generated content, unlocking
// audio generation.
func (s *courseService) ApproveContent(ctx context.Context, episodeID string) error {
	return s.transition(ctx, episodeID, course.StateContentApproved, "content approved")
}

// ApproveEpisode gives final approval to an episode with validated
// audio.
func (s *courseService) ApproveEpisode(ctx context.Context, episodeID string) error {
	return s.transition(ctx, episodeID, course.StateApproved, "episode approved")
}

func (s *courseService) transition(ctx context.Context, episodeID string, next course.EpisodeState, msg string) error {
	episode, err := s.episodeRepo.FindByID(ctx, episodeID)
	if err != nil {
		return fmt.Errorf("failed to find episode: %w", err)
	}
	if !episode.State.CanTransitionTo(next) {
		return fmt.Errorf("episode %s is %s, cannot move to %s", episodeID, episode.State, next)
	}
	if err := s.episodeRepo.UpdateState(ctx, episodeID, next); err != nil {
		return fmt.Errorf("failed to update episode state: %w", err)
	}

	log.Info().
		Str("episode_id", episodeID).
		Str("from", episode.State.String()).
		Str("to", next.String()).
		Msg(msg)

	return nil
}

// RequestRevision sends one episode back to content generation. The
// content version is bumped so regeneration writes fresh artifact
// versions; sibling episodes are untouched.
func (s *courseService) RequestRevision(ctx context.Context, episodeID, feedback string) error {
	episode, err := s.episodeRepo.FindByID(ctx, episodeID)
	if err != nil {
		return fmt.Errorf("failed to find episode: %w", err)
	}
	if !episode.State.CanRequestRevision() {
		return fmt.Errorf("episode %s is %s, revision requires generated content", episodeID, episode.State)
	}

	if err := s.episodeRepo.UpdateRevision(ctx, episodeID, episode.ContentVersion+1, feedback); err != nil {
		return fmt.Errorf("failed to reset episode for revision: %w", err)
	}

	log.Info().
		Str("episode_id", episodeID).
		Str("from", episode.State.String()).
		Int("content_version", episode.ContentVersion+1).
		Msg("revision requested")

	return nil
}

// GetEpisode returns one episode.
func (s *courseService) GetEpisode(ctx context.Context, episodeID string) (*course.Episode, error) {
	return s.episodeRepo.FindByID(ctx, episodeID)
}

// ListEpisodes returns a chapter's episodes in order.
func (s *courseService) ListEpisodes(ctx context.Context, chapterID string) ([]*course.Episode, error) {
	return s.episodeRepo.FindByChapterID(ctx, chapterID)
}

// GetScript returns the latest script version for an episode.
func (s *courseService) GetScript(ctx context.Context, episodeID string) (*course.Script, error) {
	return s.scriptRepo.FindLatestByEpisodeID(ctx, episodeID)
}

// GetMCQSet returns the latest question set version for an episode.
func (s *courseService) GetMCQSet(ctx context.Context, episodeID string) (*course.MCQSet, error) {
	return s.mcqSetRepo.FindLatestByEpisodeID(ctx, episodeID)
}

// GetAudio returns the latest audio version for an episode.
func (s *courseService) GetAudio(ctx context.Context, episodeID string) (*course.Audio, error) {
	return s.audioRepo.FindLatestByEpisodeID(ctx, episodeID)
}

// GetErrorReport returns the episode's error report, if present.
func (s *courseService) GetErrorReport(ctx context.Context, episodeID string) (*course.ErrorReport, error) {
	episode, err := s.episodeRepo.FindByID(ctx, episodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find episode: %w", err)
	}
	if episode.ErrorReport == nil {
		return nil, fmt.Errorf("episode %s has no error report", episodeID)
	}
	return episode.ErrorReport, nil
}
