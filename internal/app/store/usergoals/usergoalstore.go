// internal/app/store/usergoals/usergoalstore.go
package usergoalstore

import (
	"context"
	"errors"
	"time"

	"github.com/instephq/instep/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("user goal progress not found")

// Store manages per-user goal progress. Documents are addressed by the
// composite key from goalkey.UserGoal; callers construct the key, the store
// never derives it.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("userGoals")}
}

func (s *Store) Get(ctx context.Context, id string) (models.UserGoalProgress, error) {
	var rec models.UserGoalProgress
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.UserGoalProgress{}, ErrNotFound
		}
		return models.UserGoalProgress{}, err
	}
	return rec, nil
}

// Create inserts a progress record. The record's ID must already be the
// composite key. Duplicate keys surface as a driver write error; callers
// that want get-or-create semantics check Get first.
func (s *Store) Create(ctx context.Context, rec models.UserGoalProgress) (models.UserGoalProgress, error) {
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, rec); err != nil {
		return models.UserGoalProgress{}, err
	}
	return rec, nil
}

// SetProgress overwrites the milestone pointer, progress percent and
// timeline in one update. The percent is assigned as given, not clamped or
// compared with the stored value.
func (s *Store) SetProgress(ctx context.Context, id, currentMilestoneID string, percent int, timeline []models.TimelineEntry) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"currentMilestoneId": currentMilestoneID,
		"progressPercent":    percent,
		"timeline":           timeline,
		"updatedAt":          time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser returns all progress records for a user.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]models.UserGoalProgress, error) {
	cur, err := s.c.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	var recs []models.UserGoalProgress
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}
