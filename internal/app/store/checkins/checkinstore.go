// internal/app/store/checkins/checkinstore.go
package checkinstore

import (
	"context"
	"time"

	"github.com/instephq/instep/internal/domain/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists check-ins. Every submission is recorded, with or without a
// completed milestone.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("checkIns")}
}

func (s *Store) Create(ctx context.Context, ci models.CheckIn) (models.CheckIn, error) {
	if ci.ID == "" {
		ci.ID = uuid.NewString()
	}
	ci.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, ci); err != nil {
		return models.CheckIn{}, err
	}
	return ci, nil
}

// ListByUserGoal returns up to limit of a user's check-ins for a goal,
// newest first.
func (s *Store) ListByUserGoal(ctx context.Context, userID, goalID string, limit int) ([]models.CheckIn, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"userId": userID, "goalId": goalID},
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	var cis []models.CheckIn
	if err := cur.All(ctx, &cis); err != nil {
		return nil, err
	}
	return cis, nil
}
