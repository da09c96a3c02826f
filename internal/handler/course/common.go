package course

import (
	"time"

	"revcast/internal/model/course"
	httputil "revcast/internal/pkg/http"
)

// ErrorResponse aliases the shared error envelope.
type ErrorResponse = httputil.ErrorResponse

// ChapterInfo is the chapter DTO.
type ChapterInfo struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Subject    string `json:"subject"`
	GradeBand  string `json:"grade_band"`
	Curriculum string `json:"curriculum,omitempty"`
	Language   string `json:"language,omitempty"`
	WordCount  int    `json:"word_count"`
	LineCount  int    `json:"line_count"`
	CreatedAt  string `json:"created_at"`
}

func toChapterInfo(ch *course.Chapter) ChapterInfo {
	return ChapterInfo{
		ID:         ch.ID,
		Title:      ch.Title,
		Subject:    ch.Subject,
		GradeBand:  ch.GradeBand,
		Curriculum: ch.Curriculum,
		Language:   ch.Language,
		WordCount:  ch.WordCount,
		LineCount:  ch.LineCount,
		CreatedAt:  ch.CreatedAt.Format(time.RFC3339),
	}
}

func toChapterInfoList(chapters []*course.Chapter) []ChapterInfo {
	result := make([]ChapterInfo, len(chapters))
	for i, ch := range chapters {
		result[i] = toChapterInfo(ch)
	}
	return result
}

// PlanInfo is the episode plan DTO.
type PlanInfo struct {
	ID        string               `json:"id"`
	ChapterID string               `json:"chapter_id"`
	GradeBand string               `json:"grade_band"`
	Status    string               `json:"status"`
	Episodes  []course.EpisodeSpec `json:"episodes"`
	CreatedAt string               `json:"created_at"`
}

func toPlanInfo(plan *course.EpisodePlan) PlanInfo {
	return PlanInfo{
		ID:        plan.ID,
		ChapterID: plan.ChapterID,
		GradeBand: plan.GradeBand,
		Status:    string(plan.Status),
		Episodes:  plan.Episodes,
		CreatedAt: plan.CreatedAt.Format(time.RFC3339),
	}
}

// EpisodeInfo is the episode DTO.
type EpisodeInfo struct {
	ID                    string   `json:"id"`
	ChapterID             string   `json:"chapter_id"`
	PlanID                string   `json:"plan_id"`
	EpisodeNumber         int      `json:"episode_number"`
	Title                 string   `json:"title"`
	ConceptIDs            []string `json:"concept_ids"`
	TargetDurationMinutes float64  `json:"target_duration_minutes"`
	TargetWords           int      `json:"target_words"`
	State                 string   `json:"state"`
	ContentVersion        int      `json:"content_version"`
	RevisionFeedback      string   `json:"revision_feedback,omitempty"`
	HasErrorReport        bool     `json:"has_error_report"`
	UpdatedAt             string   `json:"updated_at"`
}

func toEpisodeInfo(e *course.Episode) EpisodeInfo {
	return EpisodeInfo{
		ID:                    e.ID,
		ChapterID:             e.ChapterID,
		PlanID:                e.PlanID,
		EpisodeNumber:         e.EpisodeNumber,
		Title:                 e.Title,
		ConceptIDs:            e.ConceptIDs,
		TargetDurationMinutes: e.TargetDurationMinutes,
		TargetWords:           e.TargetWords,
		State:                 e.State.String(),
		ContentVersion:        e.ContentVersion,
		RevisionFeedback:      e.RevisionFeedback,
		HasErrorReport:        e.ErrorReport != nil,
		UpdatedAt:             e.UpdatedAt.Format(time.RFC3339),
	}
}

func toEpisodeInfoList(episodes []*course.Episode) []EpisodeInfo {
	result := make([]EpisodeInfo, len(episodes))
	for i, e := range episodes {
		result[i] = toEpisodeInfo(e)
	}
	return result
}
