// internal/app/store/groupinvites/groupinvitestore.go
package groupinvitestore

import (
	"context"
	"errors"
	"time"

	"github.com/instephq/instep/internal/app/system/invitecode"
	"github.com/instephq/instep/internal/domain/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Use limits by creator role.
const (
	MaxUsesGuide  = 10
	MaxUsesMember = 5
	// DefaultExpiry is how long a new invite stays redeemable.
	DefaultExpiry = 7 * 24 * time.Hour
)

var ErrNotFound = errors.New("invite not found")

// Store manages shareable group invite codes.
type Store struct {
	c      *mongo.Collection
	expiry time.Duration
}

// New creates a Store. If expiry is 0 or negative, DefaultExpiry is used.
func New(db *mongo.Database, expiry time.Duration) *Store {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Store{c: db.Collection("groupInvites"), expiry: expiry}
}

// Expiry returns the configured invite lifetime.
func (s *Store) Expiry() time.Duration {
	return s.expiry
}

// Create mints an active invite for a group. The code is generated here;
// MaxUses follows the creator's role unless the caller set it already.
func (s *Store) Create(ctx context.Context, inv models.GroupInvite) (models.GroupInvite, error) {
	now := time.Now().UTC()
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.InviteCode == "" {
		inv.InviteCode = invitecode.New()
	}
	if inv.MaxUses == 0 {
		if inv.CreatedByRole == models.RoleGuide {
			inv.MaxUses = MaxUsesGuide
		} else {
			inv.MaxUses = MaxUsesMember
		}
	}
	inv.Status = models.InviteActive
	inv.UsesCount = 0
	inv.CreatedAt = now
	inv.ExpiresAt = now.Add(s.expiry)
	if _, err := s.c.InsertOne(ctx, inv); err != nil {
		return models.GroupInvite{}, err
	}
	return inv, nil
}

// FindByCode returns the newest invite carrying the code. Codes are not
// unique-indexed; in the unlikely event of a collision the most recently
// created invite wins.
func (s *Store) FindByCode(ctx context.Context, code string) (models.GroupInvite, error) {
	var inv models.GroupInvite
	err := s.c.FindOne(ctx, bson.M{"inviteCode": code},
		options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})).Decode(&inv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.GroupInvite{}, ErrNotFound
		}
		return models.GroupInvite{}, err
	}
	return inv, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.GroupInvite, error) {
	var inv models.GroupInvite
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&inv); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.GroupInvite{}, ErrNotFound
		}
		return models.GroupInvite{}, err
	}
	return inv, nil
}

// IncUses atomically bumps the redemption counter. The limit itself is
// checked by the caller before joining, not enforced here.
func (s *Store) IncUses(ctx context.Context, id string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"usesCount": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Disable marks an invite so it no longer validates or redeems. Invites are
// never deleted; expired and disabled codes stay behind for the audit trail.
func (s *Store) Disable(ctx context.Context, id string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": models.InviteDisabled}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByGroup returns a group's invites, newest first.
func (s *Store) ListByGroup(ctx context.Context, groupID string) ([]models.GroupInvite, error) {
	cur, err := s.c.Find(ctx, bson.M{"groupId": groupID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var invs []models.GroupInvite
	if err := cur.All(ctx, &invs); err != nil {
		return nil, err
	}
	return invs, nil
}
