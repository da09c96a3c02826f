package course

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RepairAttempt is one entry in an episode's append-only repair log.
type RepairAttempt struct {
	Attempt       int       `bson:"attempt" json:"attempt"`
	Category      string    `bson:"category" json:"category"`
	Action        string    `bson:"action" json:"action"` // repair prompt name
	Success       bool      `bson:"success" json:"success"`
	ChangeSummary string    `bson:"change_summary" json:"change_summary"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// SuggestedActionTeacherReview is the fixed suggested action on every
// error report.
const SuggestedActionTeacherReview = "teacher_review_required"

// ErrorReport is produced when the repair loop exhausts its attempts.
// The episode lands in needs_review and the report is what the
// reviewer sees.
type ErrorReport struct {
	ChapterID       string          `bson:"chapter_id" json:"chapter_id"`
	EpisodeNumber   int             `bson:"episode_number" json:"episode_number"`
	FailedStage     string          `bson:"failed_stage" json:"failed_stage"` // content, audio
	Categories      []string        `bson:"categories" json:"categories"`     // deduplicated, persisted categories
	Errors          []string        `bson:"errors" json:"errors"`             // final validation errors
	Attempts        []RepairAttempt `bson:"attempts" json:"attempts"`
	SuggestedAction string          `bson:"suggested_action" json:"suggested_action"`
	CreatedAt       time.Time       `bson:"created_at" json:"created_at"`
}

// Episode is the per-episode workflow record. State transitions follow
// EpisodeState.CanTransitionTo; artifacts live in their own
// collections keyed by episode_id and version.
type Episode struct {
	ID        string `bson:"id" json:"id"` // UUID
	ChapterID string `bson:"chapter_id" json:"chapter_id"`
	PlanID    string `bson:"plan_id" json:"plan_id"`

	EpisodeNumber         int      `bson:"episode_number" json:"episode_number"`
	Title                 string   `bson:"title" json:"title"`
	ConceptIDs            []string `bson:"concept_ids" json:"concept_ids"`
	TargetDurationMinutes float64  `bson:"target_duration_minutes" json:"target_duration_minutes"`
	TargetWords           int      `bson:"target_words" json:"target_words"`

	State          EpisodeState `bson:"state" json:"state"`
	ContentVersion int          `bson:"content_version" json:"content_version"` // bumped on every regeneration

	RepairLog   []RepairAttempt `bson:"repair_log" json:"repair_log"`
	ErrorReport *ErrorReport    `bson:"error_report,omitempty" json:"error_report,omitempty"`

	RevisionFeedback string `bson:"revision_feedback,omitempty" json:"revision_feedback,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Collection returns the collection name.
func (e *Episode) Collection() string { return "episodes" }

// EnsureIndexes creates and maintains indexes.
func (e *Episode) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(e.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("uniq_id").SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "plan_id", Value: 1},
				{Key: "episode_number", Value: 1},
			},
			Options: options.Index().SetName("uniq_plan_episode").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "chapter_id", Value: 1}, {Key: "episode_number", Value: 1}},
			Options: options.Index().SetName("idx_chapter_episode"),
		},
		{
			Keys:    bson.D{{Key: "state", Value: 1}},
			Options: options.Index().SetName("idx_state"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
