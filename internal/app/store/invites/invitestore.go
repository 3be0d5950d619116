// internal/app/store/invites/invitestore.go
package invitestore

import (
	"context"
	"errors"
	"time"

	"github.com/instephq/instep/internal/domain/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Direct invite statuses.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

var ErrNotFound = errors.New("invite not found")

// Store manages direct, targeted invites delivered in-app. Distinct from
// the shareable codes in groupinvitestore.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("invites")}
}

func (s *Store) Create(ctx context.Context, inv models.Invite) (models.Invite, error) {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.Status == "" {
		inv.Status = StatusPending
	}
	inv.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, inv); err != nil {
		return models.Invite{}, err
	}
	return inv, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Invite, error) {
	var inv models.Invite
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&inv); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Invite{}, ErrNotFound
		}
		return models.Invite{}, err
	}
	return inv, nil
}

// ListPendingByUser returns a user's unanswered invites, newest first.
func (s *Store) ListPendingByUser(ctx context.Context, userID string) ([]models.Invite, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"userId": userID, "status": StatusPending},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var invs []models.Invite
	if err := cur.All(ctx, &invs); err != nil {
		return nil, err
	}
	return invs, nil
}

// SetStatus records the recipient's answer. Only pending invites can move;
// answering twice returns ErrNotFound.
func (s *Store) SetStatus(ctx context.Context, id, status string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": StatusPending},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
