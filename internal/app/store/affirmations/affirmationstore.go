// internal/app/store/affirmations/affirmationstore.go
package affirmationstore

import (
	"context"
	"time"

	"github.com/instephq/instep/internal/domain/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("affirmations")}
}

func (s *Store) Create(ctx context.Context, a models.Affirmation) (models.Affirmation, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Affirmation{}, err
	}
	return a, nil
}

// ListByUser returns up to limit of a user's affirmations, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string, limit int) ([]models.Affirmation, error) {
	cur, err := s.c.Find(ctx, bson.M{"userId": userID},
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	var as []models.Affirmation
	if err := cur.All(ctx, &as); err != nil {
		return nil, err
	}
	return as, nil
}
