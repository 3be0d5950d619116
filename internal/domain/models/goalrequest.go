// internal/domain/models/goalrequest.go
package models

import "time"

// GoalRequest types.
const (
	RequestNewGoal  = "new_goal"
	RequestJoinGoal = "join_goal"
)

// GoalRequest captures a user asking for a goal that isn't in the catalog yet,
// or asking to join one that is not open. Triaged by admins outside this core.
type GoalRequest struct {
	ID                string            `bson:"_id" json:"id"`
	UserID            string            `bson:"userId" json:"userId"`
	RequestedGoalText string            `bson:"requestedGoalText" json:"requestedGoalText"`
	Type              string            `bson:"type" json:"type"` // "new_goal" | "join_goal"
	GoalID            string            `bson:"goalId,omitempty" json:"goalId,omitempty"`
	Status            string            `bson:"status" json:"status"` // "open" until triaged
	Meta              map[string]string `bson:"meta,omitempty" json:"meta,omitempty"`
	CreatedAt         time.Time         `bson:"createdAt" json:"createdAt"`
}

// WaitlistEntry queues a user for a goal whose groups are not accepting
// members yet.
type WaitlistEntry struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	GoalID    string    `bson:"goalId" json:"goalId"`
	Status    string    `bson:"status" json:"status"` // "waiting"
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
