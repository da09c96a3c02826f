package course

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"revcast/internal/model/course"
)

// ScriptRepository is the script artifact store interface.
type ScriptRepository interface {
	Create(ctx context.Context, s *course.Script) error
	FindLatestByEpisodeID(ctx context.Context, episodeID string) (*course.Script, error)
	FindByEpisodeIDAndVersion(ctx context.Context, episodeID string, version int) (*course.Script, error)
}

// ScriptRepo is the Mongo-backed script store.
type ScriptRepo struct {
	coll *mongo.Collection
}

// NewScriptRepo creates a script repository.
func NewScriptRepo(db *mongo.Database) *ScriptRepo {
	var s course.Script
	return &ScriptRepo{coll: db.Collection(s.Collection())}
}

// Create inserts a script version.
func (r *ScriptRepo) Create(ctx context.Context, s *course.Script) error {
	s.CreatedAt = time.Now()
	_, err := r.coll.InsertOne(ctx, s)
	return err
}

// FindLatestByEpisodeID returns the newest script version.
func (r *ScriptRepo) FindLatestByEpisodeID(ctx context.Context, episodeID string) (*course.Script, error) {
	var s course.Script
	opts := options.FindOne().SetSort(bson.M{"version": -1})
	if err := r.coll.FindOne(ctx, bson.M{"episode_id": episodeID}, opts).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// FindByEpisodeIDAndVersion returns one script version.
func (r *ScriptRepo) FindByEpisodeIDAndVersion(ctx context.Context, episodeID string, version int) (*course.Script, error) {
	var s course.Script
	filter := bson.M{"episode_id": episodeID, "version": version}
	if err := r.coll.FindOne(ctx, filter).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
