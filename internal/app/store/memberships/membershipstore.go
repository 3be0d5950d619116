// internal/app/store/memberships/membershipstore.go
package membershipstore

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

var (
	ErrNotFound  = errors.New("membership not found")
	ErrDuplicate = errors.New("user already belongs to this group")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("userGroups")}
}

// GetByUserGoal returns the user's membership for a goal, if any. A user
// holds at most one under normal flow; ties break on the newest.
func (s *Store) GetByUserGoal(ctx context.Context, userID, goalID string) (models.Membership, error) {
	var m models.Membership
	err := s.c.FindOne(ctx, bson.M{"userId": userID, "goalId": goalID}).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Membership{}, ErrNotFound
		}
		return models.Membership{}, err
	}
	return m, nil
}

func (s *Store) GetByUserGroup(ctx context.Context, userID, groupID string) (models.Membership, error) {
	var m models.Membership
	err := s.c.FindOne(ctx, bson.M{"userId": userID, "groupId": groupID}).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Membership{}, ErrNotFound
		}
		return models.Membership{}, err
	}
	return m, nil
}

// Create inserts a membership. The unique (userId, groupId) index rejects a
// second document for the same pair; that surfaces as ErrDuplicate.
func (s *Store) Create(ctx context.Context, m models.Membership) (models.Membership, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Role == "" {
		m.Role = models.RoleMember
	}
	m.JoinedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Membership{}, ErrDuplicate
		}
		return models.Membership{}, err
	}
	return m, nil
}

// ListByGroup returns a group's memberships in join order.
func (s *Store) ListByGroup(ctx context.Context, groupID string) ([]models.Membership, error) {
	cur, err := s.c.Find(ctx, bson.M{"groupId": groupID},
		options.Find().SetSort(bson.D{{Key: "joinedAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var ms []models.Membership
	if err := cur.All(ctx, &ms); err != nil {
		return nil, err
	}
	return ms, nil
}

// FindGuide returns a group's guide membership, if one has been assigned.
func (s *Store) FindGuide(ctx context.Context, groupID string) (models.Membership, error) {
	var m models.Membership
	err := s.c.FindOne(ctx, bson.M{"groupId": groupID, "role": models.RoleGuide}).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Membership{}, ErrNotFound
		}
		return models.Membership{}, err
	}
	return m, nil
}

// SetRole updates the role on an existing membership.
func (s *Store) SetRole(ctx context.Context, userID, groupID, role string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"userId": userID, "groupId": groupID},
		bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByGroup returns how many memberships a group has. This is the source
// of truth; Group.MemberCount is a cached counter.
func (s *Store) CountByGroup(ctx context.Context, groupID string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"groupId": groupID})
}
