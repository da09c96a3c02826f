package course

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Chapter is one textbook chapter submitted for episode production.
// Concepts, plans, episodes and artifacts are stored in their own
// collections keyed by chapter_id.
type Chapter struct {
	ID string `bson:"id" json:"id"` // UUID

	Title      string `bson:"title" json:"title"`
	Subject    string `bson:"subject" json:"subject"`
	GradeBand  string `bson:"grade_band" json:"grade_band"` // e.g. "6-8"
	Curriculum string `bson:"curriculum" json:"curriculum"` // e.g. "CBSE"
	Language   string `bson:"language" json:"language"`

	ChapterText string `bson:"chapter_text" json:"chapter_text"`
	WordCount   int    `bson:"word_count" json:"word_count"`
	LineCount   int    `bson:"line_count" json:"line_count"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}

// Collection returns the collection name.
func (c *Chapter) Collection() string { return "chapters" }

// EnsureIndexes creates and maintains indexes.
func (c *Chapter) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(c.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("uniq_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "subject", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_subject_created"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
