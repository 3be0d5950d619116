// internal/domain/models/usergoal.go
package models

import "time"

// TimelineEntry records when (or whether) a single milestone was completed.
// CompletedAt is nil until the user checks in against the milestone.
type TimelineEntry struct {
	MilestoneID string     `bson:"milestoneId" json:"milestoneId"`
	CompletedAt *time.Time `bson:"completedAt" json:"completedAt"`
}

// UserGoalProgress tracks one user's progress through one goal. There is at
// most one document per (userId, goalId); its _id is the composite key
// produced by goalkey.UserGoal, and both writer and reader must use that
// constructor to address the same record.
//
// ProgressPercent mirrors the percentage of the most recently completed
// milestone. It is assigned directly on completion, so out-of-order
// completions would move it backwards; callers are expected to complete
// milestones in definition order.
type UserGoalProgress struct {
	ID                 string          `bson:"_id" json:"id"`
	UserID             string          `bson:"userId" json:"userId"`
	GoalID             string          `bson:"goalId" json:"goalId"`
	StartDate          time.Time       `bson:"startDate" json:"startDate"`
	CurrentMilestoneID string          `bson:"currentMilestoneId" json:"currentMilestoneId"`
	ProgressPercent    int             `bson:"progressPercent" json:"progressPercent"`
	Timeline           []TimelineEntry `bson:"timeline" json:"timeline"`
	CreatedAt          time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time       `bson:"updatedAt" json:"updatedAt"`
}
