package course

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"revcast/internal/model/course"
)

// ConceptSetRepository is the concept set store interface.
type ConceptSetRepository interface {
	Create(ctx context.Context, set *course.ConceptSet) error
	FindByID(ctx context.Context, id string) (*course.ConceptSet, error)
	FindLatestByChapterID(ctx context.Context, chapterID string) (*course.ConceptSet, error)
}

// ConceptSetRepo is the Mongo-backed concept set store.
type ConceptSetRepo struct {
	coll *mongo.Collection
}

// NewConceptSetRepo creates a concept set repository.
func NewConceptSetRepo(db *mongo.Database) *ConceptSetRepo {
	var s course.ConceptSet
	return &ConceptSetRepo{coll: db.Collection(s.Collection())}
}

// Create inserts a concept set.
func (r *ConceptSetRepo) Create(ctx context.Context, set *course.ConceptSet) error {
	set.CreatedAt = time.Now()
	_, err := r.coll.InsertOne(ctx, set)
	return err
}

// FindByID looks up a concept set by id.
func (r *ConceptSetRepo) FindByID(ctx context.Context, id string) (*course.ConceptSet, error) {
	var set course.ConceptSet
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&set); err != nil {
		return nil, err
	}
	return &set, nil
}

// FindLatestByChapterID returns the newest concept set for a chapter.
// A re-extraction supersedes older sets without deleting them.
func (r *ConceptSetRepo) FindLatestByChapterID(ctx context.Context, chapterID string) (*course.ConceptSet, error) {
	var set course.ConceptSet
	opts := options.FindOne().SetSort(bson.M{"created_at": -1})
	if err := r.coll.FindOne(ctx, bson.M{"chapter_id": chapterID}, opts).Decode(&set); err != nil {
		return nil, err
	}
	return &set, nil
}
