// internal/domain/models/chatmessage.go
package models

import "time"

// Chat message types.
const (
	MessageUser      = "user"
	MessageSystem    = "system"
	MessageMilestone = "milestone"
)

// MessageMeta tags system messages with extra context, e.g. guide tips.
type MessageMeta struct {
	Type    string `bson:"type,omitempty" json:"type,omitempty"` // "guide_tip"
	GuideID string `bson:"guideId,omitempty" json:"guideId,omitempty"`
}

// MilestoneRef embeds milestone details in a milestone-celebration message.
type MilestoneRef struct {
	MilestoneID    string `bson:"milestoneId" json:"milestoneId"`
	MilestoneTitle string `bson:"milestoneTitle" json:"milestoneTitle"`
	Comment        string `bson:"comment,omitempty" json:"comment,omitempty"`
	ImageURL       string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// MessageCheer records one user's cheer for one message. Keyed by
// "<messageId>_<userId>" so a user can cheer a message at most once.
type MessageCheer struct {
	ID        string    `bson:"_id" json:"id"`
	MessageID string    `bson:"messageId" json:"messageId"`
	UserID    string    `bson:"userId" json:"userId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// ChatMessage is one message in a group's chat. CheersCount is a cached
// counter maintained with atomic increments; the per-user cheer documents are
// the source of truth for who cheered.
type ChatMessage struct {
	ID          string        `bson:"_id" json:"id"`
	GroupID     string        `bson:"groupId" json:"groupId"`
	UserID      string        `bson:"userId" json:"userId"`
	UserName    string        `bson:"userName" json:"userName"`
	UserPhoto   string        `bson:"userPhoto,omitempty" json:"userPhoto,omitempty"`
	Text        string        `bson:"text" json:"text"`
	Type        string        `bson:"type" json:"type"` // "user" | "system" | "milestone"
	Meta        *MessageMeta  `bson:"meta,omitempty" json:"meta,omitempty"`
	Milestone   *MilestoneRef `bson:"milestone,omitempty" json:"milestone,omitempty"`
	CheersCount int           `bson:"cheersCount,omitempty" json:"cheersCount,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
}
