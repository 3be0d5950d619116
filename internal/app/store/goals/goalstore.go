// internal/app/store/goals/goalstore.go
package goalstore

import (
	"context"
	"errors"

	"github.com/instephq/instep/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatusLive marks catalog entries users may start.
const StatusLive = "live"

var ErrNotFound = errors.New("goal not found")

// Store reads the goal catalog. Definitions are seeded and administered
// elsewhere; this store only inserts in tests and fixtures.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("goals")}
}

func (s *Store) GetByID(ctx context.Context, id string) (models.GoalDefinition, error) {
	var g models.GoalDefinition
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.GoalDefinition{}, ErrNotFound
		}
		return models.GoalDefinition{}, err
	}
	return g, nil
}

// ListLive returns the catalog entries with status "live", sorted by name.
func (s *Store) ListLive(ctx context.Context) ([]models.GoalDefinition, error) {
	cur, err := s.c.Find(ctx, bson.M{"status": StatusLive},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var goals []models.GoalDefinition
	if err := cur.All(ctx, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// Insert adds a catalog entry. Used for seeding and tests.
func (s *Store) Insert(ctx context.Context, g models.GoalDefinition) error {
	_, err := s.c.InsertOne(ctx, g)
	return err
}
