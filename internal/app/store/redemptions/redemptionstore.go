// internal/app/store/redemptions/redemptionstore.go
package redemptionstore

import (
	"context"
	"time"

	"github.com/instephq/instep/internal/domain/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the append-only log of invite redemption attempts. Entries are
// written for both successful joins and full-group rejections and are never
// updated or deleted.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("inviteRedemptions")}
}

// Append records a redemption attempt.
func (s *Store) Append(ctx context.Context, r models.InviteRedemption) (models.InviteRedemption, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.RedeemedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.InviteRedemption{}, err
	}
	return r, nil
}

// ListByInvite returns an invite's redemption history, newest first.
func (s *Store) ListByInvite(ctx context.Context, inviteID string) ([]models.InviteRedemption, error) {
	cur, err := s.c.Find(ctx, bson.M{"inviteId": inviteID},
		options.Find().SetSort(bson.D{{Key: "redeemedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var rs []models.InviteRedemption
	if err := cur.All(ctx, &rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// CountJoined returns how many attempts on an invite ended in a join.
func (s *Store) CountJoined(ctx context.Context, inviteID string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"inviteId": inviteID,
		"outcome":  models.RedemptionJoined,
	})
}
