// internal/domain/models/redemption.go
package models

import "time"

// Redemption outcomes.
const (
	RedemptionJoined = "joined"
	RedemptionFull   = "full"
)

// InviteRedemption is an append-only audit entry recording the outcome of a
// redemption attempt. Entries are never mutated after creation.
type InviteRedemption struct {
	ID               string    `bson:"_id" json:"id"`
	InviteID         string    `bson:"inviteId" json:"inviteId"`
	GroupID          string    `bson:"groupId" json:"groupId"`
	GoalID           string    `bson:"goalId" json:"goalId"`
	InviterUserID    string    `bson:"inviterUserId" json:"inviterUserId"`
	RedeemedByUserID string    `bson:"redeemedByUserId" json:"redeemedByUserId"`
	RedeemedAt       time.Time `bson:"redeemedAt" json:"redeemedAt"`
	Outcome          string    `bson:"outcome" json:"outcome"` // "joined" | "full"
}
