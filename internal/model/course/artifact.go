package course

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Section is one speaker-tagged block of a script. Text holds
// "Speaker: line" dialogue lines separated by newlines.
type Section struct {
	ID                string   `bson:"id" json:"id"` // hook, core_content, summary, ...
	Text              string   `bson:"text" json:"text"`
	ConceptIDsCovered []string `bson:"concept_ids_covered" json:"concept_ids_covered"`
	SourceReference   string   `bson:"source_reference,omitempty" json:"source_reference,omitempty"`
	Inferred          bool     `bson:"inferred,omitempty" json:"inferred,omitempty"`
}

// Script is a versioned script artifact for one episode. Repair and
// revision always write a new version; versions are never edited.
type Script struct {
	ID        string `bson:"id" json:"id"` // UUID
	EpisodeID string `bson:"episode_id" json:"episode_id"`
	Version   int    `bson:"version" json:"version"`

	Sections           []Section         `bson:"sections" json:"sections"`
	WordCount          int               `bson:"word_count" json:"word_count"`
	PronunciationHints map[string]string `bson:"pronunciation_hints,omitempty" json:"pronunciation_hints,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Collection returns the collection name.
func (s *Script) Collection() string { return "scripts" }

// EnsureIndexes creates and maintains indexes.
func (s *Script) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(s.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "episode_id", Value: 1},
				{Key: "version", Value: -1},
			},
			Options: options.Index().SetName("uniq_episode_version").SetUnique(true),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// Question is one multiple-choice question tied to a script moment.
type Question struct {
	QID          string       `bson:"qid" json:"qid"`
	ConceptID    string       `bson:"concept_id" json:"concept_id"`
	Type         QuestionType `bson:"type" json:"type"`
	QuestionText string       `bson:"question_text" json:"question_text"`
	Options      []string     `bson:"options" json:"options"` // exactly 4
	CorrectIndex int          `bson:"correct_index" json:"correct_index"`
	TimestampRef float64      `bson:"timestamp_ref" json:"timestamp_ref"` // seconds into the episode
}

// MCQSet is a versioned question set for one episode.
type MCQSet struct {
	ID        string `bson:"id" json:"id"` // UUID
	EpisodeID string `bson:"episode_id" json:"episode_id"`
	Version   int    `bson:"version" json:"version"`

	Questions []Question `bson:"questions" json:"questions"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Collection returns the collection name.
func (m *MCQSet) Collection() string { return "mcq_sets" }

// EnsureIndexes creates and maintains indexes.
func (m *MCQSet) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(m.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "episode_id", Value: 1},
				{Key: "version", Value: -1},
			},
			Options: options.Index().SetName("uniq_episode_version").SetUnique(true),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// AudioSegment is one synthesized dialogue segment.
type AudioSegment struct {
	Index           int     `bson:"index" json:"index"`
	Speaker         string  `bson:"speaker" json:"speaker"`
	Text            string  `bson:"text" json:"text"`
	StorageKey      string  `bson:"storage_key" json:"storage_key"`
	DurationSeconds float64 `bson:"duration_seconds" json:"duration_seconds"`
}

// Audio is a versioned audio artifact for one episode: the
// concatenated file plus the per-segment breakdown used by the
// duration and gap checks.
type Audio struct {
	ID        string `bson:"id" json:"id"` // UUID
	EpisodeID string `bson:"episode_id" json:"episode_id"`
	Version   int    `bson:"version" json:"version"`

	StorageKey      string         `bson:"storage_key" json:"storage_key"` // concatenated file
	URL             string         `bson:"url,omitempty" json:"url,omitempty"`
	DurationSeconds float64        `bson:"duration_seconds" json:"duration_seconds"`
	SegmentGapMs    int            `bson:"segment_gap_ms" json:"segment_gap_ms"`
	Segments        []AudioSegment `bson:"segments" json:"segments"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Collection returns the collection name.
func (a *Audio) Collection() string { return "audios" }

// EnsureIndexes creates and maintains indexes.
func (a *Audio) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(a.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "episode_id", Value: 1},
				{Key: "version", Value: -1},
			},
			Options: options.Index().SetName("uniq_episode_version").SetUnique(true),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
