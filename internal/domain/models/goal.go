// internal/domain/models/goal.go
package models

// Milestone is a named checkpoint within a goal. Percentage is the overall
// progress a user reaches when this milestone is completed (0-100).
type Milestone struct {
	ID         string `bson:"id" json:"id"`
	Title      string `bson:"title" json:"title"`
	Percentage int    `bson:"percentage" json:"percentage"`
}

// GoalDefinition is an immutable catalog entry. Definitions are seeded and
// administered outside this service; the core only reads them.
//
// Milestones are ordered: completing milestone i advances the user's current
// milestone pointer to i+1.
type GoalDefinition struct {
	ID         string      `bson:"_id" json:"id"`
	Name       string      `bson:"name" json:"name"`
	Status     string      `bson:"status" json:"status"` // "live" goals are selectable
	Milestones []Milestone `bson:"milestones" json:"milestones"`
}

// MilestoneByID returns the milestone with the given id, or nil.
func (g *GoalDefinition) MilestoneByID(id string) *Milestone {
	for i := range g.Milestones {
		if g.Milestones[i].ID == id {
			return &g.Milestones[i]
		}
	}
	return nil
}

// NextMilestoneID returns the id of the milestone following the given one in
// definition order. If the given milestone is last (or unknown), it returns
// the input unchanged.
func (g *GoalDefinition) NextMilestoneID(id string) string {
	for i := range g.Milestones {
		if g.Milestones[i].ID == id && i < len(g.Milestones)-1 {
			return g.Milestones[i+1].ID
		}
	}
	return id
}
