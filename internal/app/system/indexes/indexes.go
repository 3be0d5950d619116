// internal/app/system/indexes/indexes.go

// Package indexes reconciles the index set at startup. Each ensure function
// is idempotent (CreateMany reuses indexes whose name and keys already
// match); errors are aggregated so any problem is visible and startup can
// fail fast.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureAll creates the indexes every collection needs. Called from the
// EnsureSchema bootstrap hook.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	for _, e := range []struct {
		name string
		fn   func(context.Context, *mongo.Database) error
	}{
		{"goals", ensureGoals},
		{"groups", ensureGroups},
		{"userGroups", ensureUserGroups},
		{"groupInvites", ensureGroupInvites},
		{"checkIns", ensureCheckIns},
		{"inviteRedemptions", ensureInviteRedemptions},
		{"affirmations", ensureAffirmations},
		{"invites", ensureInvites},
		{"groupMessages", ensureGroupMessages},
		{"waitlistEntries", ensureWaitlistEntries},
	} {
		if err := e.fn(ctx, db); err != nil {
			problems = append(problems, e.name+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureGoals(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("goals").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// Catalog listing filters on status == "live"
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_goals_status"),
		},
	})
	return err
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("groups").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// Open-group scan: active groups for a goal, newest first
		{
			Keys: bson.D{
				{Key: "goalId", Value: 1},
				{Key: "isActive", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("idx_groups_goal_active_created"),
		},
	})
	return err
}

func ensureUserGroups(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("userGroups").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// Exactly one membership per (user, group); role changes update the doc
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "groupId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_ug_user_group"),
		},
		// Idempotent assignment lookup: which group is this user in for a goal
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "goalId", Value: 1}},
			Options: options.Index().SetName("idx_ug_user_goal"),
		},
		// Member lists and guide lookups
		{
			Keys:    bson.D{{Key: "groupId", Value: 1}, {Key: "role", Value: 1}},
			Options: options.Index().SetName("idx_ug_group_role"),
		},
	})
	return err
}

func ensureGroupInvites(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("groupInvites").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// Lookup by code on validate/redeem. Deliberately NOT unique: code
		// collisions are accepted as negligible given the alphabet size.
		{
			Keys:    bson.D{{Key: "inviteCode", Value: 1}},
			Options: options.Index().SetName("idx_ginv_code"),
		},
		{
			Keys:    bson.D{{Key: "groupId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_ginv_group_status"),
		},
	})
	return err
}

func ensureCheckIns(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("checkIns").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// Journal view: a user's check-ins for a goal, newest first
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "goalId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("idx_checkins_user_goal_created"),
		},
	})
	return err
}

func ensureInviteRedemptions(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("inviteRedemptions").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "inviteId", Value: 1}, {Key: "redeemedAt", Value: -1}},
			Options: options.Index().SetName("idx_redemptions_invite_redeemed"),
		},
	})
	return err
}

func ensureAffirmations(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("affirmations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_affirmations_user_created"),
		},
	})
	return err
}

func ensureInvites(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("invites").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// Pending-invite inbox
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_invites_user_status"),
		},
	})
	return err
}

func ensureGroupMessages(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("groupMessages").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// Chat history: oldest first within a group
		{
			Keys:    bson.D{{Key: "groupId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("idx_messages_group_created"),
		},
	})
	return err
}

func ensureWaitlistEntries(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("waitlistEntries").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "goalId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_waitlist_goal_status"),
		},
	})
	return err
}
