// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/instephq/instep/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("user not found")

// Store manages user profile documents. The _id is the upstream auth
// subject; this store never mints IDs.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) GetByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// UpsertProfile writes name and bio, creating the document on first touch.
func (s *Store) UpsertProfile(ctx context.Context, id, name, bio string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name":      name,
			"bio":       bio,
			"updatedAt": time.Now().UTC(),
		}},
		options.Update().SetUpsert(true))
	return err
}

// SetCurrentAssignment records the goal and group a user is actively
// pursuing, for quick profile rendering.
func (s *Store) SetCurrentAssignment(ctx context.Context, id, goalID, groupID string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"currentGoalId":  goalID,
			"currentGroupId": groupID,
			"updatedAt":      time.Now().UTC(),
		}},
		options.Update().SetUpsert(true))
	return err
}

// AddPushToken registers a device token, once per token.
func (s *Store) AddPushToken(ctx context.Context, id, token string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{
			"$addToSet": bson.M{"pushTokens": token},
			"$set":      bson.M{"updatedAt": time.Now().UTC()},
		},
		options.Update().SetUpsert(true))
	return err
}

// TouchLastActive bumps the activity timestamp. Missing users are ignored;
// activity tracking is best effort.
func (s *Store) TouchLastActive(ctx context.Context, id string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"lastActiveAt": time.Now().UTC()}})
	return err
}
