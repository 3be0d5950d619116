// internal/app/store/waitlist/waitliststore.go
package waitliststore

import (
	"context"
	"time"

	"github.com/instephq/instep/internal/domain/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// StatusWaiting marks an entry still queued.
const StatusWaiting = "waiting"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("waitlistEntries")}
}

// Join queues a user for a goal. Calling it again while already waiting
// returns the existing entry rather than queueing twice.
func (s *Store) Join(ctx context.Context, userID, goalID string) (models.WaitlistEntry, error) {
	var existing models.WaitlistEntry
	err := s.c.FindOne(ctx, bson.M{
		"userId": userID,
		"goalId": goalID,
		"status": StatusWaiting,
	}).Decode(&existing)
	if err == nil {
		return existing, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.WaitlistEntry{}, err
	}

	e := models.WaitlistEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		GoalID:    goalID,
		Status:    StatusWaiting,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.WaitlistEntry{}, err
	}
	return e, nil
}

// ListWaitingByGoal returns a goal's queue in arrival order.
func (s *Store) ListWaitingByGoal(ctx context.Context, goalID string) ([]models.WaitlistEntry, error) {
	cur, err := s.c.Find(ctx, bson.M{"goalId": goalID, "status": StatusWaiting})
	if err != nil {
		return nil, err
	}
	var es []models.WaitlistEntry
	if err := cur.All(ctx, &es); err != nil {
		return nil, err
	}
	return es, nil
}
