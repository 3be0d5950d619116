// internal/app/store/groups/groupstore.go
package groupstore

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

// DefaultMaxMembers caps a freshly created group.
const DefaultMaxMembers = 10

var ErrNotFound = errors.New("group not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Group{}, ErrNotFound
		}
		return models.Group{}, err
	}
	return g, nil
}

// Create inserts a group. ID, MaxMembers and IsActive are defaulted when
// zero-valued; MemberCount is stored as given so callers creating a group
// for its first member can start it at 1.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.MaxMembers == 0 {
		g.MaxMembers = DefaultMaxMembers
	}
	g.IsActive = true
	g.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// ListActiveByGoal returns up to limit active groups for a goal, newest
// first. Capacity is not filtered here; callers inspect MemberCount on the
// returned documents.
func (s *Store) ListActiveByGoal(ctx context.Context, goalID string, limit int) ([]models.Group, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"goalId": goalID, "isActive": true},
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// IncMemberCount atomically adjusts the cached member counter.
func (s *Store) IncMemberCount(ctx context.Context, id string, delta int) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"memberCount": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
