package course

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"revcast/internal/model/course"
	"revcast/internal/pkg/id"
)

// CreateChapter registers chapter text. Subjects that do not survive
// the audio-only format are rejected up front.
func (s *courseService) CreateChapter(ctx context.Context, req *CreateChapterRequest) (*course.Chapter, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	title := strings.TrimSpace(req.Title)
	text := strings.TrimSpace(req.ChapterText)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if text == "" {
		return nil, fmt.Errorf("chapter text is required")
	}
	if req.GradeBand == "" {
		return nil, fmt.Errorf("grade band is required")
	}
	if _, err := s.planner.TargetMinutes(req.GradeBand); err != nil {
		return nil, err
	}
	if !s.prompts.IsSubjectSupported(req.Subject) {
		return nil, fmt.Errorf("subject %q is not supported for audio revision", req.Subject)
	}

	language := req.Language
	if language == "" {
		language = s.pipeline.Language
	}

	ch := &course.Chapter{
		ID:          id.New(),
		Title:       title,
		Subject:     req.Subject,
		GradeBand:   req.GradeBand,
		Curriculum:  req.Curriculum,
		Language:    language,
		ChapterText: text,
		WordCount:   s.analyzer.WordCount(text),
		LineCount:   len(strings.Split(text, "\n")),
	}

	if err := s.chapterRepo.Create(ctx, ch); err != nil {
		return nil, fmt.Errorf("failed to create chapter: %w", err)
	}

	log.Info().
		Str("chapter_id", ch.ID).
		Str("subject", ch.Subject).
		Str("grade_band", ch.GradeBand).
		Int("word_count", ch.WordCount).
		Msg("chapter created")

	return ch, nil
}

// GetChapter returns one chapter.
func (s *courseService) GetChapter(ctx context.Context, chapterID string) (*course.Chapter, error) {
	return s.chapterRepo.FindByID(ctx, chapterID)
}

// ListChapters lists chapters, newest first.
func (s *courseService) ListChapters(ctx context.Context, subject string, limit int64) ([]*course.Chapter, error) {
	return s.chapterRepo.List(ctx, subject, limit)
}
