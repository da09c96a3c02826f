package course

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"revcast/internal/model/course"
)

// PlanRepository is the episode plan store interface.
type PlanRepository interface {
	Create(ctx context.Context, plan *course.EpisodePlan) error
	FindByID(ctx context.Context, id string) (*course.EpisodePlan, error)
	FindLatestByChapterID(ctx context.Context, chapterID string) (*course.EpisodePlan, error)
	UpdateStatus(ctx context.Context, id string, status course.PlanStatus) error
	MarkReplacedByChapterID(ctx context.Context, chapterID string) error
}

// PlanRepo is the Mongo-backed episode plan store.
type PlanRepo struct {
	coll *mongo.Collection
}

// NewPlanRepo creates an episode plan repository.
func NewPlanRepo(db *mongo.Database) *PlanRepo {
	var p course.EpisodePlan
	return &PlanRepo{coll: db.Collection(p.Collection())}
}

// Create inserts a plan.
func (r *PlanRepo) Create(ctx context.Context, plan *course.EpisodePlan) error {
	plan.CreatedAt = time.Now()
	if plan.Status == "" {
		plan.Status = course.PlanStatusDraft
	}
	_, err := r.coll.InsertOne(ctx, plan)
	return err
}

// FindByID looks up a plan by id.
func (r *PlanRepo) FindByID(ctx context.Context, id string) (*course.EpisodePlan, error) {
	var plan course.EpisodePlan
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// FindLatestByChapterID returns the newest plan for a chapter.
func (r *PlanRepo) FindLatestByChapterID(ctx context.Context, chapterID string) (*course.EpisodePlan, error) {
	var plan course.EpisodePlan
	opts := options.FindOne().SetSort(bson.M{"created_at": -1})
	if err := r.coll.FindOne(ctx, bson.M{"chapter_id": chapterID}, opts).Decode(&plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// UpdateStatus updates a plan's status; approval also stamps
// approved_at.
func (r *PlanRepo) UpdateStatus(ctx context.Context, id string, status course.PlanStatus) error {
	update := bson.M{"status": status}
	if status == course.PlanStatusApproved {
		update["approved_at"] = time.Now()
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": update})
	return err
}

// MarkReplacedByChapterID marks every non-replaced plan of a chapter as
// replaced. Called before a re-plan writes its fresh draft.
func (r *PlanRepo) MarkReplacedByChapterID(ctx context.Context, chapterID string) error {
	_, err := r.coll.UpdateMany(
		ctx,
		bson.M{"chapter_id": chapterID, "status": bson.M{"$ne": course.PlanStatusReplaced}},
		bson.M{"$set": bson.M{"status": course.PlanStatusReplaced}},
	)
	return err
}
