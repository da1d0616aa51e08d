package repository

import (
	"context"
	"time"

	"magang-portal-backend/app/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository menyimpan jejak aktivitas ke MongoDB.
type ActivityRepository interface {
	Record(ctx context.Context, a *model.Activity) error
	FindRecent(ctx context.Context, limit int64) ([]model.Activity, error)
}

type activityRepository struct {
	collection *mongo.Collection
}

// NewActivityRepository membuat instance baru activityRepository.
func NewActivityRepository(db *mongo.Database) ActivityRepository {
	return &activityRepository{collection: db.Collection("activities")}
}

// Record menyisipkan 1 dokumen aktivitas.
func (r *activityRepository) Record(ctx context.Context, a *model.Activity) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, a)
	return err
}

// FindRecent mengambil aktivitas terbaru, terbaru dulu.
func (r *activityRepository) FindRecent(ctx context.Context, limit int64) ([]model.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	activities := []model.Activity{}
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}
