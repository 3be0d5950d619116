// internal/domain/models/user.go
package models

import "time"

// User is the profile document for an authenticated user. Authentication
// itself is handled upstream; this core only stores profile fields and push
// tokens (one per device, accumulated with array-union semantics).
type User struct {
	ID             string    `bson:"_id" json:"id"`
	Name           string    `bson:"name,omitempty" json:"name,omitempty"`
	Bio            string    `bson:"bio,omitempty" json:"bio,omitempty"`
	CurrentGoalID  string    `bson:"currentGoalId,omitempty" json:"currentGoalId,omitempty"`
	CurrentGroupID string    `bson:"currentGroupId,omitempty" json:"currentGroupId,omitempty"`
	PushTokens     []string  `bson:"pushTokens,omitempty" json:"pushTokens,omitempty"`
	LastActiveAt   time.Time `bson:"lastActiveAt,omitempty" json:"lastActiveAt,omitempty"`
	UpdatedAt      time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
