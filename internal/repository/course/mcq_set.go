package course

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"revcast/internal/model/course"
)

// MCQSetRepository is the question set artifact store interface.
type MCQSetRepository interface {
	Create(ctx context.Context, set *course.MCQSet) error
	FindLatestByEpisodeID(ctx context.Context, episodeID string) (*course.MCQSet, error)
	FindByEpisodeIDAndVersion(ctx context.Context, episodeID string, version int) (*course.MCQSet, error)
}

// MCQSetRepo is the Mongo-backed question set store.
type MCQSetRepo struct {
	coll *mongo.Collection
}

// NewMCQSetRepo creates a question set repository.
func NewMCQSetRepo(db *mongo.Database) *MCQSetRepo {
	var m course.MCQSet
	return &MCQSetRepo{coll: db.Collection(m.Collection())}
}

// Create inserts a question set version.
func (r *MCQSetRepo) Create(ctx context.Context, set *course.MCQSet) error {
	set.CreatedAt = time.Now()
	_, err := r.coll.InsertOne(ctx, set)
	return err
}

// FindLatestByEpisodeID returns the newest question set version.
func (r *MCQSetRepo) FindLatestByEpisodeID(ctx context.Context, episodeID string) (*course.MCQSet, error) {
	var set course.MCQSet
	opts := options.FindOne().SetSort(bson.M{"version": -1})
	if err := r.coll.FindOne(ctx, bson.M{"episode_id": episodeID}, opts).Decode(&set); err != nil {
		return nil, err
	}
	return &set, nil
}

// FindByEpisodeIDAndVersion returns one question set version.
func (r *MCQSetRepo) FindByEpisodeIDAndVersion(ctx context.Context, episodeID string, version int) (*course.MCQSet, error) {
	var set course.MCQSet
	filter := bson.M{"episode_id": episodeID, "version": version}
	if err := r.coll.FindOne(ctx, filter).Decode(&set); err != nil {
		return nil, err
	}
	return &set, nil
}
