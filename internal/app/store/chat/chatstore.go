// internal/app/store/chat/chatstore.go
package chatstore

import (
	"context"
	"errors"
	"time"

	"github.com/instephq/instep/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("message not found")

// Store persists group chat messages, including the system and milestone
// messages other services emit on joins and completions, plus the per-user
// cheer documents behind each message's cheer counter.
type Store struct {
	c      *mongo.Collection
	cheers *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:      db.Collection("groupMessages"),
		cheers: db.Collection("messageCheers"),
	}
}

func (s *Store) Append(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Type == "" {
		m.Type = models.MessageUser
	}
	m.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.ChatMessage{}, err
	}
	return m, nil
}

// ListByGroup returns up to limit messages for a group, oldest first.
func (s *Store) ListByGroup(ctx context.Context, groupID string, limit int) ([]models.ChatMessage, error) {
	cur, err := s.c.Find(ctx, bson.M{"groupId": groupID},
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: 1}}).
			SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	var ms []models.ChatMessage
	if err := cur.All(ctx, &ms); err != nil {
		return nil, err
	}
	return ms, nil
}

// IncCheers bumps the cached cheer counter on a message.
func (s *Store) IncCheers(ctx context.Context, id string, delta int) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"cheersCount": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Cheer records the user's cheer for a message and bumps its counter.
// The cheer document is keyed by message and user, so repeat cheers are
// no-ops; the bool reports whether this call added a new cheer.
func (s *Store) Cheer(ctx context.Context, messageID, userID string) (bool, error) {
	doc := models.MessageCheer{
		ID:        messageID + "_" + userID,
		MessageID: messageID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.cheers.InsertOne(ctx, doc); err != nil {
		if wafflemongo.IsDup(err) {
			return false, nil
		}
		return false, err
	}
	if err := s.IncCheers(ctx, messageID, 1); err != nil {
		return false, err
	}
	return true, nil
}
