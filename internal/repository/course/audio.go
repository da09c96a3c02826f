package course

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"revcast/internal/model/course"
)

// AudioRepository is the audio artifact store interface.
type AudioRepository interface {
	Create(ctx context.Context, a *course.Audio) error
	FindLatestByEpisodeID(ctx context.Context, episodeID string) (*course.Audio, error)
}

// AudioRepo is the Mongo-backed audio store.
type AudioRepo struct {
	coll *mongo.Collection
}

// NewAudioRepo creates an audio repository.
func NewAudioRepo(db *mongo.Database) *AudioRepo {
	var a course.Audio
	return &AudioRepo{coll: db.Collection(a.Collection())}
}

// Create inserts an audio version.
func (r *AudioRepo) Create(ctx context.Context, a *course.Audio) error {
	a.CreatedAt = time.Now()
	_, err := r.coll.InsertOne(ctx, a)
	return err
}

// FindLatestByEpisodeID returns the newest audio version.
func (r *AudioRepo) FindLatestByEpisodeID(ctx context.Context, episodeID string) (*course.Audio, error) {
	var a course.Audio
	opts := options.FindOne().SetSort(bson.M{"version": -1})
	if err := r.coll.FindOne(ctx, bson.M{"episode_id": episodeID}, opts).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}
