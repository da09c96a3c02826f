package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"revcast/internal/model/course"
)

// EnsureIndexes creates the indexes of every collection at startup.
func EnsureIndexes(db *mongo.Database) error {
	ctx := context.Background()

	models := []Model{
		&course.Chapter{},
		&course.ConceptSet{},
		&course.EpisodePlan{},
		&course.Episode{},
		&course.Script{},
		&course.MCQSet{},
		&course.Audio{},
	}

	return EnsureAllIndexes(ctx, db, models...)
}
