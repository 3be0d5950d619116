// internal/domain/models/checkin.go
package models

import "time"

// CheckIn is a user-submitted progress note. MilestoneID is empty for
// note-only check-ins. Every submission is persisted, whether or not a
// milestone was completed.
type CheckIn struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	GoalID      string    `bson:"goalId" json:"goalId"`
	GroupID     string    `bson:"groupId" json:"groupId"`
	Note        string    `bson:"note" json:"note"`
	MilestoneID string    `bson:"milestoneId,omitempty" json:"milestoneId,omitempty"`
	PhotoURL    string    `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Affirmation is a short positive note a user writes to themselves.
type Affirmation struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
