package course

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"revcast/internal/model/course"
	"revcast/internal/pkg/coursetools"
	"revcast/internal/pkg/id"
)

// GenerateAudioForEpisode synthesizes the approved script into one
// concatenated audio file, validates it against the expected spoken
// duration, and stores the artifact. A failed validation parks the
// episode in needs_review with an audio-stage error report.
func (s *courseService) GenerateAudioForEpisode(ctx context.Context, episodeID string) (*course.Audio, error) {
	if s.tts == nil {
		return nil, fmt.Errorf("tts provider is not configured")
	}
	if s.storage == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	episode, err := s.episodeRepo.FindByID(ctx, episodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find episode: %w", err)
	}
	if !episode.State.CanTransitionTo(course.StateAudioGenerating) {
		return nil, fmt.Errorf("episode %s is %s, approve its content first", episodeID, episode.State)
	}

	script, err := s.scriptRepo.FindLatestByEpisodeID(ctx, episodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load script: %w", err)
	}

	speakers := []string{s.pipeline.Speaker1Name, s.pipeline.Speaker2Name}
	segments := coursetools.SplitDialogue(script, speakers)
	if len(segments) == 0 {
		return nil, fmt.Errorf("script has no dialogue segments")
	}

	if err := s.episodeRepo.UpdateState(ctx, episodeID, course.StateAudioGenerating); err != nil {
		return nil, fmt.Errorf("failed to update episode state: %w", err)
	}

	startTime := time.Now()
	log.Info().
		Str("episode_id", episodeID).
		Int("segments", len(segments)).
		Msg("starting audio generation")

	audio, err := s.synthesizeEpisode(ctx, episode, script, segments)
	if err != nil {
		return nil, s.failAudio(ctx, episode, err)
	}

	expected := coursetools.ExpectedScriptDurationSeconds(script.WordCount)
	result := s.audioValidator.Validate(audio, expected)
	if !result.IsValid {
		report := &course.ErrorReport{
			ChapterID:       episode.ChapterID,
			EpisodeNumber:   episode.EpisodeNumber,
			FailedStage:     "audio",
			Categories:      []string{string(coursetools.CategoryOther)},
			Errors:          result.Errors,
			Attempts:        []course.RepairAttempt{},
			SuggestedAction: course.SuggestedActionTeacherReview,
			CreatedAt:       time.Now(),
		}
		if err := s.episodeRepo.UpdateContent(ctx, episodeID, course.StateNeedsReview, episode.ContentVersion, nil, report); err != nil {
			log.Error().Err(err).Str("episode_id", episodeID).Msg("failed to record audio validation failure")
		}
		return audio, fmt.Errorf("audio validation failed: %v", result.Errors)
	}

	if err := s.episodeRepo.UpdateState(ctx, episodeID, course.StateAudioGenerated); err != nil {
		return nil, fmt.Errorf("failed to update episode state: %w", err)
	}

	log.Info().
		Str("episode_id", episodeID).
		Str("audio_id", audio.ID).
		Float64("duration_seconds", audio.DurationSeconds).
		Dur("elapsed", time.Since(startTime)).
		Msg("audio generation completed")

	return audio, nil
}

// synthesizeEpisode synthesizes every dialogue segment, joins them
// with the configured silence gap, probes the result and uploads it.
func (s *courseService) synthesizeEpisode(
	ctx context.Context,
	episode *course.Episode,
	script *course.Script,
	segments []coursetools.DialogueSegment,
) (*course.Audio, error) {
	tmpDir, err := os.MkdirTemp("", "revcast_audio_")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	segmentPaths := make([]string, 0, len(segments))
	audioSegments := make([]course.AudioSegment, 0, len(segments))
	for i, seg := range segments {
		voice, ok := s.voiceFor(seg.Speaker)
		if !ok {
			return nil, fmt.Errorf("no voice configured for speaker %q", seg.Speaker)
		}

		result, err := s.tts.Synthesize(ctx, seg.Text, voice)
		if err != nil {
			return nil, fmt.Errorf("tts failed for segment %d: %w", i+1, err)
		}
		if !result.Success {
			return nil, fmt.Errorf("tts failed for segment %d: %s", i+1, result.ErrorMessage)
		}

		segPath := filepath.Join(tmpDir, fmt.Sprintf("segment_%03d.mp3", i+1))
		if err := os.WriteFile(segPath, result.AudioData, 0644); err != nil {
			return nil, fmt.Errorf("failed to write segment %d: %w", i+1, err)
		}
		segmentPaths = append(segmentPaths, segPath)
		audioSegments = append(audioSegments, course.AudioSegment{
			Index:           i + 1,
			Speaker:         seg.Speaker,
			Text:            seg.Text,
			DurationSeconds: result.Duration,
		})
	}

	outputPath := filepath.Join(tmpDir, "episode.mp3")
	if err := s.ffmpeg.ConcatAudioWithGaps(ctx, segmentPaths, outputPath, s.pipeline.SegmentGapMs); err != nil {
		return nil, fmt.Errorf("failed to concatenate segments: %w", err)
	}

	info, err := s.ffmpeg.GetAudioInfo(ctx, outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to probe audio: %w", err)
	}

	file, err := os.Open(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio: %w", err)
	}
	defer file.Close()

	storageKey := fmt.Sprintf("chapters/%s/episodes/%s/audio_v%d.mp3",
		episode.ChapterID, episode.ID, script.Version)
	url, err := s.storage.Upload(ctx, storageKey, file, "audio/mpeg")
	if err != nil {
		return nil, fmt.Errorf("failed to upload audio: %w", err)
	}

	audio := &course.Audio{
		ID:              id.New(),
		EpisodeID:       episode.ID,
		Version:         script.Version,
		StorageKey:      storageKey,
		URL:             url,
		DurationSeconds: info.Duration,
		SegmentGapMs:    s.pipeline.SegmentGapMs,
		Segments:        audioSegments,
	}
	if err := s.audioRepo.Create(ctx, audio); err != nil {
		return nil, fmt.Errorf("failed to store audio record: %w", err)
	}
	return audio, nil
}

// voiceFor resolves the provider voice for a speaker name.
func (s *courseService) voiceFor(speaker string) (string, bool) {
	voice, ok := s.ttsVoices[speaker]
	return voice, ok
}

// failAudio parks an episode in needs_review on synthesis failure.
func (s *courseService) failAudio(ctx context.Context, episode *course.Episode, cause error) error {
	report := &course.ErrorReport{
		ChapterID:       episode.ChapterID,
		EpisodeNumber:   episode.EpisodeNumber,
		FailedStage:     "audio",
		Categories:      []string{string(coursetools.CategoryOther)},
		Errors:          []string{cause.Error()},
		Attempts:        []course.RepairAttempt{},
		SuggestedAction: course.SuggestedActionTeacherReview,
		CreatedAt:       time.Now(),
	}
	if err := s.episodeRepo.UpdateContent(ctx, episode.ID, course.StateNeedsReview, episode.ContentVersion, nil, report); err != nil {
		log.Error().Err(err).Str("episode_id", episode.ID).Msg("failed to record audio failure")
	}
	return cause
}
