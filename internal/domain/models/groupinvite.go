// internal/domain/models/groupinvite.go
package models

import "time"

// GroupInvite statuses.
const (
	InviteActive   = "active"
	InviteDisabled = "disabled"
)

// GroupInvite is a shareable, expiring, use-limited code that grants group
// membership on redemption. Codes look like "TG-8K2P9". Expiry is enforced at
// validation/redemption time; expired invites are never deleted proactively.
// Code uniqueness is probabilistic (no unique index); the alphabet makes
// collisions negligible.
type GroupInvite struct {
	ID              string    `bson:"_id" json:"id"`
	GroupID         string    `bson:"groupId" json:"groupId"`
	GoalID          string    `bson:"goalId" json:"goalId"`
	CreatedByUserID string    `bson:"createdByUserId" json:"createdByUserId"`
	CreatedByRole   string    `bson:"createdByRole" json:"createdByRole"` // "member" | "guide"
	Status          string    `bson:"status" json:"status"`               // "active" | "disabled"
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	ExpiresAt       time.Time `bson:"expiresAt" json:"expiresAt"`
	MaxUses         int       `bson:"maxUses" json:"maxUses"`
	UsesCount       int       `bson:"usesCount" json:"usesCount"`
	InviteCode      string    `bson:"inviteCode" json:"inviteCode"`
}

// Invite is a direct, targeted invitation delivered in-app, distinct from the
// shareable GroupInvite codes. The recipient accepts or declines it.
type Invite struct {
	ID          string    `bson:"_id" json:"id"`
	GoalID      string    `bson:"goalId" json:"goalId"`
	GroupID     string    `bson:"groupId" json:"groupId"`
	UserID      string    `bson:"userId" json:"userId"` // recipient
	InviterType string    `bson:"inviterType" json:"inviterType"`
	Status      string    `bson:"status" json:"status"` // "pending" | "accepted" | "declined"
	Message     string    `bson:"message" json:"message"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
