// internal/domain/models/membership.go
package models

import "time"

// Membership roles.
const (
	RoleMember = "member"
	RoleGuide  = "guide"
)

// Membership joins a user to a group for a goal. One document per
// (userId, groupId); under normal flow a user holds at most one membership
// per goal. Role may be promoted to "guide"; memberships are never deleted
// by this core (leave-group belongs to a collaborator).
type Membership struct {
	ID       string    `bson:"_id" json:"id"`
	UserID   string    `bson:"userId" json:"userId"`
	GroupID  string    `bson:"groupId" json:"groupId"`
	GoalID   string    `bson:"goalId" json:"goalId"`
	Role     string    `bson:"role" json:"role"` // "member" | "guide"
	JoinedAt time.Time `bson:"joinedAt" json:"joinedAt"`
}
