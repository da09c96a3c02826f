package course

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"revcast/internal/model/course"
)

// ChapterRepository is the chapter store interface used by services.
type ChapterRepository interface {
	Create(ctx context.Context, ch *course.Chapter) error
	FindByID(ctx context.Context, id string) (*course.Chapter, error)
	List(ctx context.Context, subject string, limit int64) ([]*course.Chapter, error)
	Delete(ctx context.Context, id string) error
}

// ChapterRepo is the Mongo-backed chapter store.
type ChapterRepo struct {
	coll *mongo.Collection
}

// NewChapterRepo creates a chapter repository.
func NewChapterRepo(db *mongo.Database) *ChapterRepo {
	var c course.Chapter
	return &ChapterRepo{coll: db.Collection(c.Collection())}
}

// Create inserts a chapter.
func (r *ChapterRepo) Create(ctx context.Context, ch *course.Chapter) error {
	now := time.Now()
	ch.CreatedAt = now
	ch.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, ch)
	return err
}

// FindByID looks up a chapter by id.
func (r *ChapterRepo) FindByID(ctx context.Context, id string) (*course.Chapter, error) {
	var ch course.Chapter
	if err := r.coll.FindOne(ctx, bson.M{"id": id, "deleted_at": nil}).Decode(&ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// List returns chapters, newest first, optionally filtered by subject.
func (r *ChapterRepo) List(ctx context.Context, subject string, limit int64) ([]*course.Chapter, error) {
	filter := bson.M{"deleted_at": nil}
	if subject != "" {
		filter["subject"] = subject
	}
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var chapters []*course.Chapter
	if err := cur.All(ctx, &chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}

// Delete soft-deletes a chapter.
func (r *ChapterRepo) Delete(ctx context.Context, id string) error {
	_, err := r.coll.UpdateOne(
		ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{
			"deleted_at": time.Now(),
			"updated_at": time.Now(),
		}},
	)
	return err
}
