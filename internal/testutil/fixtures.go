package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/instephq/instep/internal/app/system/goalkey"
	"github.com/instephq/instep/internal/domain/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateGoal creates a live catalog goal with the given milestones.
func (f *Fixtures) CreateGoal(ctx context.Context, id, name string, milestones ...models.Milestone) models.GoalDefinition {
	f.t.Helper()

	g := models.GoalDefinition{
		ID:         id,
		Name:       name,
		Status:     "live",
		Milestones: milestones,
	}
	if _, err := f.db.Collection("goals").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test goal: %v", err)
	}
	return g
}

// RunGoal creates the standard two-milestone running goal used across
// service tests.
func (f *Fixtures) RunGoal(ctx context.Context) models.GoalDefinition {
	f.t.Helper()
	return f.CreateGoal(ctx, "run-5k", "Run a 5K",
		models.Milestone{ID: "m1", Title: "Walk 1km", Percentage: 25},
		models.Milestone{ID: "m2", Title: "Run 2km", Percentage: 50},
	)
}

// CreateGroup creates an active group for a goal with the given member count.
func (f *Fixtures) CreateGroup(ctx context.Context, goalID, name string, memberCount, maxMembers int) models.Group {
	f.t.Helper()

	g := models.Group{
		ID:          uuid.NewString(),
		GoalID:      goalID,
		Name:        name,
		MaxMembers:  maxMembers,
		MemberCount: memberCount,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return g
}

// CreateMembership links a user to a group for a goal.
func (f *Fixtures) CreateMembership(ctx context.Context, userID, groupID, goalID, role string) models.Membership {
	f.t.Helper()

	m := models.Membership{
		ID:       uuid.NewString(),
		UserID:   userID,
		GroupID:  groupID,
		GoalID:   goalID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("userGroups").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return m
}

// CreateProgress creates a progress record keyed by the composite key.
func (f *Fixtures) CreateProgress(ctx context.Context, userID string, goal models.GoalDefinition) models.UserGoalProgress {
	f.t.Helper()

	now := time.Now().UTC()
	timeline := make([]models.TimelineEntry, 0, len(goal.Milestones))
	for _, m := range goal.Milestones {
		timeline = append(timeline, models.TimelineEntry{MilestoneID: m.ID})
	}
	first := ""
	if len(goal.Milestones) > 0 {
		first = goal.Milestones[0].ID
	}
	rec := models.UserGoalProgress{
		ID:                 goalkey.UserGoal(userID, goal.ID),
		UserID:             userID,
		GoalID:             goal.ID,
		StartDate:          now,
		CurrentMilestoneID: first,
		Timeline:           timeline,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if _, err := f.db.Collection("userGoals").InsertOne(ctx, rec); err != nil {
		f.t.Fatalf("failed to create test progress: %v", err)
	}
	return rec
}

// CreateInvite creates an active invite for a group with the given expiry
// and use counts, bypassing the store so tests can build expired or
// exhausted invites directly.
func (f *Fixtures) CreateInvite(ctx context.Context, groupID, goalID, creatorID, role, code string, expiresAt time.Time, maxUses, usesCount int) models.GroupInvite {
	f.t.Helper()

	inv := models.GroupInvite{
		ID:              uuid.NewString(),
		GroupID:         groupID,
		GoalID:          goalID,
		CreatedByUserID: creatorID,
		CreatedByRole:   role,
		Status:          models.InviteActive,
		CreatedAt:       time.Now().UTC(),
		ExpiresAt:       expiresAt,
		MaxUses:         maxUses,
		UsesCount:       usesCount,
		InviteCode:      code,
	}
	if _, err := f.db.Collection("groupInvites").InsertOne(ctx, inv); err != nil {
		f.t.Fatalf("failed to create test invite: %v", err)
	}
	return inv
}

// CreateUser creates a profile document.
func (f *Fixtures) CreateUser(ctx context.Context, id, name string) models.User {
	f.t.Helper()

	u := models.User{
		ID:        id,
		Name:      name,
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}
