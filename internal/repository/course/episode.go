package course

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"revcast/internal/model/course"
)

// EpisodeRepository is the episode store interface.
type EpisodeRepository interface {
	CreateMany(ctx context.Context, episodes []*course.Episode) error
	FindByID(ctx context.Context, id string) (*course.Episode, error)
	FindByPlanID(ctx context.Context, planID string) ([]*course.Episode, error)
	FindByChapterID(ctx context.Context, chapterID string) ([]*course.Episode, error)
	UpdateState(ctx context.Context, id string, state course.EpisodeState) error
	UpdateContent(ctx context.Context, id string, state course.EpisodeState, contentVersion int, repairLog []course.RepairAttempt, report *course.ErrorReport) error
	UpdateRevision(ctx context.Context, id string, contentVersion int, feedback string) error
}

// EpisodeRepo is the Mongo-backed episode store.
type EpisodeRepo struct {
	coll *mongo.Collection
}

// NewEpisodeRepo creates an episode repository.
func NewEpisodeRepo(db *mongo.Database) *EpisodeRepo {
	var e course.Episode
	return &EpisodeRepo{coll: db.Collection(e.Collection())}
}

// CreateMany inserts the episodes of a freshly approved plan.
func (r *EpisodeRepo) CreateMany(ctx context.Context, episodes []*course.Episode) error {
	if len(episodes) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(episodes))
	for _, e := range episodes {
		e.CreatedAt = now
		e.UpdatedAt = now
		docs = append(docs, e)
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}

// FindByID looks up an episode by id.
func (r *EpisodeRepo) FindByID(ctx context.Context, id string) (*course.Episode, error) {
	var e course.Episode
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByPlanID returns a plan's episodes ordered by episode number.
func (r *EpisodeRepo) FindByPlanID(ctx context.Context, planID string) ([]*course.Episode, error) {
	return r.findSorted(ctx, bson.M{"plan_id": planID})
}

// FindByChapterID returns a chapter's episodes ordered by episode number.
func (r *EpisodeRepo) FindByChapterID(ctx context.Context, chapterID string) ([]*course.Episode, error) {
	return r.findSorted(ctx, bson.M{"chapter_id": chapterID})
}

func (r *EpisodeRepo) findSorted(ctx context.Context, filter bson.M) ([]*course.Episode, error) {
	opts := options.Find().SetSort(bson.M{"episode_number": 1})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var episodes []*course.Episode
	if err := cur.All(ctx, &episodes); err != nil {
		return nil, err
	}
	return episodes, nil
}

// UpdateState moves an episode to a new state.
func (r *EpisodeRepo) UpdateState(ctx context.Context, id string, state course.EpisodeState) error {
	_, err := r.coll.UpdateOne(
		ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{
			"state":      state,
			"updated_at": time.Now(),
		}},
	)
	return err
}

// UpdateContent records the outcome of a content generation run: the
// new state, the content version the artifacts were written under,
// the appended repair log entries and, on exhaustion, the error report.
func (r *EpisodeRepo) UpdateContent(ctx context.Context, id string, state course.EpisodeState, contentVersion int, repairLog []course.RepairAttempt, report *course.ErrorReport) error {
	set := bson.M{
		"state":           state,
		"content_version": contentVersion,
		"updated_at":      time.Now(),
	}
	if report != nil {
		set["error_report"] = report
	}
	update := bson.M{"$set": set}
	if report == nil {
		update["$unset"] = bson.M{"error_report": ""}
	}
	if len(repairLog) > 0 {
		update["$push"] = bson.M{"repair_log": bson.M{"$each": repairLog}}
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	return err
}

// UpdateRevision resets an episode for regeneration after a human
// revision request: state back to content_generating, version bumped,
// feedback stored for the next prompt.
func (r *EpisodeRepo) UpdateRevision(ctx context.Context, id string, contentVersion int, feedback string) error {
	_, err := r.coll.UpdateOne(
		ctx,
		bson.M{"id": id},
		bson.M{
			"$set": bson.M{
				"state":             course.StateContentGenerating,
				"content_version":   contentVersion,
				"revision_feedback": feedback,
				"updated_at":        time.Now(),
			},
			"$unset": bson.M{"error_report": ""},
		},
	)
	return err
}
