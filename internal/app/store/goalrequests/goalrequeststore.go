// internal/app/store/goalrequests/goalrequeststore.go
package goalrequeststore

import (
	"context"
	"time"

	"github.com/instephq/instep/internal/domain/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatusOpen marks a request awaiting triage.
const StatusOpen = "open"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("goalRequests")}
}

func (s *Store) Create(ctx context.Context, r models.GoalRequest) (models.GoalRequest, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = StatusOpen
	}
	r.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.GoalRequest{}, err
	}
	return r, nil
}

// ListOpen returns untriaged requests, oldest first.
func (s *Store) ListOpen(ctx context.Context) ([]models.GoalRequest, error) {
	cur, err := s.c.Find(ctx, bson.M{"status": StatusOpen},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var rs []models.GoalRequest
	if err := cur.All(ctx, &rs); err != nil {
		return nil, err
	}
	return rs, nil
}
