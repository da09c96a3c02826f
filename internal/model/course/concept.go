package course

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Concept is one teachable concept extracted from chapter text.
// Importance and EstimatedMinutes are pointers so that an absent value
// is distinguishable from a legitimate zero or minimum value; the
// planner rejects absent fields instead of computing a fallback.
type Concept struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`

	Summary          string     `bson:"summary" json:"summary"`
	Importance       *int       `bson:"importance" json:"importance"`               // 1-5
	Difficulty       Difficulty `bson:"difficulty" json:"difficulty"`               // easy|medium|hard
	EstimatedMinutes *float64   `bson:"estimated_minutes" json:"estimated_minutes"` // > 0

	Prerequisites        []string `bson:"prerequisites" json:"prerequisites"` // concept ids, DAG within chapter
	ExamRelevance        []string `bson:"exam_relevance" json:"exam_relevance"`
	CommonMisconceptions []string `bson:"common_misconceptions" json:"common_misconceptions"`
	MemoryHooks          []string `bson:"memory_hooks" json:"memory_hooks"`

	SourceReference string `bson:"source_reference,omitempty" json:"source_reference,omitempty"` // "pX:lines Y-Z"
}

// ConceptSet is the extraction result for one chapter, stored as a
// single document. Concepts are immutable after extraction; a re-run
// replaces the whole set.
type ConceptSet struct {
	ID        string `bson:"id" json:"id"` // UUID
	ChapterID string `bson:"chapter_id" json:"chapter_id"`

	Concepts      []Concept `bson:"concepts" json:"concepts"` // textbook order
	PromptVersion string    `bson:"prompt_version" json:"prompt_version"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Collection returns the collection name.
func (s *ConceptSet) Collection() string { return "concept_sets" }

// EnsureIndexes creates and maintains indexes.
func (s *ConceptSet) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(s.Collection())
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
