// internal/app/service/groupassign/service.go

// Package groupassign places users into support groups for a goal, reusing
// an open group when one exists and creating a fresh one otherwise.
package groupassign

import (
	"context"

	chatstore "github.com/instephq/instep/internal/app/store/chat"
	goalstore "github.com/instephq/instep/internal/app/store/goals"
	groupstore "github.com/instephq/instep/internal/app/store/groups"
	membershipstore "github.com/instephq/instep/internal/app/store/memberships"
	userstore "github.com/instephq/instep/internal/app/store/users"
	"github.com/instephq/instep/internal/domain/models"

	"go.uber.org/zap"
)

// DefaultScanLimit bounds how many open groups are considered before a new
// one is created.
const DefaultScanLimit = 5

// DefaultGroupName is used when the goal's name cannot be resolved.
const DefaultGroupName = "Support Group"

// Service assigns users to groups and answers group membership reads.
//
// Assignment and role changes are writes the caller needs a definite
// answer for, so they propagate errors. The read helpers (IsUserGuide,
// GetGroupGuide, GetGroupMembers) degrade to empty answers instead.
type Service struct {
	goals       *goalstore.Store
	groups      *groupstore.Store
	memberships *membershipstore.Store
	users       *userstore.Store
	chat        *chatstore.Store
	scanLimit   int
	log         *zap.Logger
}

func New(
	goals *goalstore.Store,
	groups *groupstore.Store,
	memberships *membershipstore.Store,
	users *userstore.Store,
	chat *chatstore.Store,
	scanLimit int,
	logger *zap.Logger,
) *Service {
	if scanLimit <= 0 {
		scanLimit = DefaultScanLimit
	}
	return &Service{
		goals:       goals,
		groups:      groups,
		memberships: memberships,
		users:       users,
		chat:        chat,
		scanLimit:   scanLimit,
		log:         logger,
	}
}

// AssignUserToGroup returns the ID of the group the user belongs to for the
// goal, joining or creating one as needed.
//
// If the user already has a membership for the goal, that group wins and
// nothing is written. Otherwise the newest open groups are scanned (up to
// the scan limit) and the first with room is joined; when none has room a
// new group is created with this user as its first member.
//
// Joining an existing group does not touch the group's cached MemberCount;
// the membership documents are the source of truth for occupancy.
func (s *Service) AssignUserToGroup(ctx context.Context, userID, goalID string) (string, error) {
	existing, err := s.memberships.GetByUserGoal(ctx, userID, goalID)
	if err == nil {
		return existing.GroupID, nil
	}
	if err != membershipstore.ErrNotFound {
		return "", err
	}

	candidates, err := s.groups.ListActiveByGoal(ctx, goalID, s.scanLimit)
	if err != nil {
		return "", err
	}

	for i := range candidates {
		g := &candidates[i]
		if !g.HasCapacity() {
			continue
		}
		if err := s.join(ctx, userID, g.ID, goalID); err != nil {
			return "", err
		}
		s.log.Info("groupassign: joined existing group",
			zap.String("user_id", userID),
			zap.String("goal_id", goalID),
			zap.String("group_id", g.ID))
		return g.ID, nil
	}

	group, err := s.createGroup(ctx, goalID)
	if err != nil {
		return "", err
	}
	if err := s.join(ctx, userID, group.ID, goalID); err != nil {
		return "", err
	}
	s.log.Info("groupassign: created group",
		zap.String("user_id", userID),
		zap.String("goal_id", goalID),
		zap.String("group_id", group.ID))
	return group.ID, nil
}

// PromoteToGuide marks the user's membership in the group as the guide
// role. When no membership exists the promotion is logged and skipped;
// backend failures propagate.
func (s *Service) PromoteToGuide(ctx context.Context, userID, groupID string) error {
	err := s.memberships.SetRole(ctx, userID, groupID, models.RoleGuide)
	if err == membershipstore.ErrNotFound {
		s.log.Warn("groupassign: promote skipped, no membership",
			zap.String("user_id", userID),
			zap.String("group_id", groupID))
		return nil
	}
	return err
}

// IsUserGuide reports whether the user is the group's guide. Backend
// failures are logged and read as false.
func (s *Service) IsUserGuide(ctx context.Context, userID, groupID string) bool {
	m, err := s.memberships.GetByUserGroup(ctx, userID, groupID)
	if err != nil {
		if err != membershipstore.ErrNotFound {
			s.log.Warn("groupassign: guide check failed",
				zap.String("user_id", userID),
				zap.String("group_id", groupID),
				zap.Error(err))
		}
		return false
	}
	return m.Role == models.RoleGuide
}

// GetGroupGuide returns the group's guide membership, or nil when the
// group has no guide or the lookup fails.
func (s *Service) GetGroupGuide(ctx context.Context, groupID string) *models.Membership {
	m, err := s.memberships.FindGuide(ctx, groupID)
	if err != nil {
		if err != membershipstore.ErrNotFound {
			s.log.Warn("groupassign: guide lookup failed",
				zap.String("group_id", groupID), zap.Error(err))
		}
		return nil
	}
	return &m
}

// GetGroupMembers lists the group's memberships in join order. Backend
// failures are logged and surface as an empty list.
func (s *Service) GetGroupMembers(ctx context.Context, groupID string) []models.Membership {
	ms, err := s.memberships.ListByGroup(ctx, groupID)
	if err != nil {
		s.log.Warn("groupassign: member list failed",
			zap.String("group_id", groupID), zap.Error(err))
		return []models.Membership{}
	}
	if ms == nil {
		ms = []models.Membership{}
	}
	return ms
}

func (s *Service) createGroup(ctx context.Context, goalID string) (models.Group, error) {
	name := DefaultGroupName
	if goal, err := s.goals.GetByID(ctx, goalID); err == nil {
		name = goal.Name + " Group"
	} else {
		s.log.Warn("groupassign: goal name lookup failed, using default",
			zap.String("goal_id", goalID), zap.Error(err))
	}
	return s.groups.Create(ctx, models.Group{
		GoalID:      goalID,
		Name:        name,
		MemberCount: 1,
	})
}

// join creates the membership and updates the user's current assignment.
// A duplicate membership from a concurrent assign is treated as joined.
func (s *Service) join(ctx context.Context, userID, groupID, goalID string) error {
	_, err := s.memberships.Create(ctx, models.Membership{
		UserID:  userID,
		GroupID: groupID,
		GoalID:  goalID,
		Role:    models.RoleMember,
	})
	if err != nil && err != membershipstore.ErrDuplicate {
		return err
	}

	if err := s.users.SetCurrentAssignment(ctx, userID, goalID, groupID); err != nil {
		s.log.Warn("groupassign: current assignment update failed",
			zap.String("user_id", userID), zap.Error(err))
	}
	s.announce(ctx, userID, groupID)
	return nil
}

// announce posts a system message to the group chat. Best effort.
func (s *Service) announce(ctx context.Context, userID, groupID string) {
	name := "A new member"
	if u, err := s.users.GetByID(ctx, userID); err == nil && u.Name != "" {
		name = u.Name
	}
	_, err := s.chat.Append(ctx, models.ChatMessage{
		GroupID: groupID,
		UserID:  userID,
		Type:    models.MessageSystem,
		Text:    name + " joined the group",
	})
	if err != nil {
		s.log.Warn("groupassign: join announcement failed",
			zap.String("group_id", groupID), zap.Error(err))
	}
}
