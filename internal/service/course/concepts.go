package course

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"revcast/internal/model/course"
	"revcast/internal/pkg/cache"
	"revcast/internal/pkg/coursetools"
	"revcast/internal/pkg/id"
)

// ExtractConcepts runs concept extraction over the chapter text. The
// parsed concept list is cached by chapter text hash and prompt
// version, so re-running extraction for unchanged text costs nothing.
func (s *courseService) ExtractConcepts(ctx context.Context, chapterID string) (*course.ConceptSet, error) {
	startTime := time.Now()

	ch, err := s.chapterRepo.FindByID(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("failed to find chapter: %w", err)
	}

	concepts, cached := s.cachedConcepts(ctx, ch.ChapterText)
	if !cached {
		prompt := s.prompts.ConceptExtractionPrompt(ch.Subject, ch.GradeBand, ch.ChapterText)
		raw, err := s.llm.Generate(ctx, prompt, s.aiOptions.Temperature)
		if err != nil {
			return nil, fmt.Errorf("concept extraction call failed: %w", err)
		}

		concepts, err = coursetools.ParseConceptExtraction(raw)
		if err != nil {
			return nil, fmt.Errorf("concept extraction parse failed: %w", err)
		}

		s.storeCachedConcepts(ctx, ch.ChapterText, concepts)
	}

	set := &course.ConceptSet{
		ID:            id.New(),
		ChapterID:     ch.ID,
		Concepts:      concepts,
		PromptVersion: s.prompts.Version,
	}
	if err := s.conceptSetRepo.Create(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to store concept set: %w", err)
	}

	log.Info().
		Str("chapter_id", ch.ID).
		Str("concept_set_id", set.ID).
		Int("concepts", len(concepts)).
		Bool("cache_hit", cached).
		Dur("duration", time.Since(startTime)).
		Msg("concept extraction completed")

	return set, nil
}

// GetConcepts returns the latest concept set for a chapter.
func (s *courseService) GetConcepts(ctx context.Context, chapterID string) (*course.ConceptSet, error) {
	return s.conceptSetRepo.FindLatestByChapterID(ctx, chapterID)
}

func (s *courseService) cachedConcepts(ctx context.Context, chapterText string) ([]course.Concept, bool) {
	if s.cache == nil {
		return nil, false
	}
	key := cache.ConceptCacheKey(chapterText, s.prompts.Version)
	var concepts []course.Concept
	if err := s.cache.Get(ctx, key, &concepts); err != nil {
		return nil, false
	}
	if len(concepts) == 0 {
		return nil, false
	}
	return concepts, true
}

func (s *courseService) storeCachedConcepts(ctx context.Context, chapterText string, concepts []course.Concept) {
	if s.cache == nil {
		return
	}
	key := cache.ConceptCacheKey(chapterText, s.prompts.Version)
	if err := s.cache.Set(ctx, key, concepts, cache.ConceptCacheTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache extracted concepts")
	}
}
