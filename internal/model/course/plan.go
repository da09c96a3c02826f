package course

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EpisodeSpec is one planned episode inside an EpisodePlan.
// ConceptIDs is a contiguous slice of the chapter's topological
// concept order; concepts are never reordered across or within
// episodes.
type EpisodeSpec struct {
	EpisodeNumber         int      `bson:"episode_number" json:"episode_number"` // 1-based, contiguous
	Title                 string   `bson:"title" json:"title"`
	ConceptIDs            []string `bson:"concept_ids" json:"concept_ids"`
	TargetDurationMinutes float64  `bson:"target_duration_minutes" json:"target_duration_minutes"`
	EstimatedMinutes      float64  `bson:"estimated_minutes" json:"estimated_minutes"` // sum of concept estimates
	TargetWords           int      `bson:"target_words" json:"target_words"`           // duration * words per minute
	Rationale             string   `bson:"rationale" json:"rationale"`
}

// EpisodePlan is the planner output for one chapter. A re-plan
// produces a fresh plan document; plans are never patched in place.
type EpisodePlan struct {
	ID        string `bson:"id" json:"id"` // UUID
	ChapterID string `bson:"chapter_id" json:"chapter_id"`

	GradeBand string        `bson:"grade_band" json:"grade_band"`
	Episodes  []EpisodeSpec `bson:"episodes" json:"episodes"`
	Status    PlanStatus    `bson:"status" json:"status"`

	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
	ApprovedAt *time.Time `bson:"approved_at,omitempty" json:"approved_at,omitempty"`
}

// Collection returns the collection name.
func (p *EpisodePlan) Collection() string { return "episode_plans" }

// EnsureIndexes creates and maintains indexes.
func (p *EpisodePlan) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(p.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("uniq_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "chapter_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_chapter_created"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
