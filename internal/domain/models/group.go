// internal/domain/models/group.go
package models

import "time"

// Group is a capacity-bounded cohort of users pursuing the same goal.
//
// MemberCount caches the number of memberships and is maintained with atomic
// increments, but the capacity check and the increment are separate round
// trips: concurrent joins can push MemberCount past MaxMembers. IsActive is
// advisory; groups are never closed by this core.
type Group struct {
	ID          string    `bson:"_id" json:"id"`
	GoalID      string    `bson:"goalId" json:"goalId"`
	Name        string    `bson:"name" json:"name"`
	MaxMembers  int       `bson:"maxMembers" json:"maxMembers"`
	MemberCount int       `bson:"memberCount" json:"memberCount"`
	IsActive    bool      `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// HasCapacity reports whether another member fits under MaxMembers.
func (g *Group) HasCapacity() bool {
	max := g.MaxMembers
	if max == 0 {
		max = 10
	}
	return g.MemberCount < max
}
