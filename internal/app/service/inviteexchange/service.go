// internal/app/service/inviteexchange/service.go

// Package inviteexchange mints, validates and redeems shareable group
// invite codes.
package inviteexchange

import (
	"context"
	"errors"
	"strings"
	"time"

	chatstore "github.com/instephq/instep/internal/app/store/chat"
	groupinvitestore "github.com/instephq/instep/internal/app/store/groupinvites"
	groupstore "github.com/instephq/instep/internal/app/store/groups"
	membershipstore "github.com/instephq/instep/internal/app/store/memberships"
	redemptionstore "github.com/instephq/instep/internal/app/store/redemptions"
	userstore "github.com/instephq/instep/internal/app/store/users"
	"github.com/instephq/instep/internal/domain/models"

	"go.uber.org/zap"
)

// ErrNotGroupMember is returned when a user tries to mint an invite for a
// group they do not belong to.
var ErrNotGroupMember = errors.New("user is not a member of this group")

// Validation messages shown on the enter-code screen.
const (
	msgCodeNotActive   = "That code doesn't look active. Check it and try again."
	msgInviteNotActive = "This invite is no longer active."
	msgInviteExpired   = "This invite has expired."
	msgInviteExhausted = "This invite has reached its limit."
	msgValidateFailed  = "Unable to validate code."
	defaultGroupName   = "Support Group"
)

// Redemption statuses reported to clients.
const (
	StatusJoined = "joined"
	StatusFull   = "full"
	StatusError  = "error"
)

// Redemption messages shown after a join attempt.
const (
	msgRedeemInvalid   = "Invalid invite code."
	msgRedeemInactive  = "Invite is no longer active."
	msgRedeemExpired   = "Invite has expired."
	msgRedeemExhausted = "Invite limit reached."
	msgRedeemFull      = "Group is full."
	msgRedeemFailed    = "Redemption failed."
	msgRedeemJoined    = "Joined group."
)

// Service runs the invite exchange. CreateInvite propagates errors; code
// validation and redemption translate every outcome, including backend
// failure, into a displayable result.
type Service struct {
	invites     *groupinvitestore.Store
	groups      *groupstore.Store
	memberships *membershipstore.Store
	redemptions *redemptionstore.Store
	users       *userstore.Store
	chat        *chatstore.Store
	log         *zap.Logger
}

func New(
	invites *groupinvitestore.Store,
	groups *groupstore.Store,
	memberships *membershipstore.Store,
	redemptions *redemptionstore.Store,
	users *userstore.Store,
	chat *chatstore.Store,
	logger *zap.Logger,
) *Service {
	return &Service{
		invites:     invites,
		groups:      groups,
		memberships: memberships,
		redemptions: redemptions,
		users:       users,
		chat:        chat,
		log:         logger,
	}
}

// CreateInvite mints an active invite code for a group the user belongs
// to. The creator's role sets the use limit: guides get more uses than
// members.
func (s *Service) CreateInvite(ctx context.Context, userID, groupID string) (models.GroupInvite, error) {
	m, err := s.memberships.GetByUserGroup(ctx, userID, groupID)
	if err != nil {
		if err == membershipstore.ErrNotFound {
			return models.GroupInvite{}, ErrNotGroupMember
		}
		return models.GroupInvite{}, err
	}

	inv, err := s.invites.Create(ctx, models.GroupInvite{
		GroupID:         groupID,
		GoalID:          m.GoalID,
		CreatedByUserID: userID,
		CreatedByRole:   m.Role,
	})
	if err != nil {
		return models.GroupInvite{}, err
	}

	s.log.Info("inviteexchange: invite created",
		zap.String("invite_id", inv.ID),
		zap.String("group_id", groupID),
		zap.String("created_by", userID),
		zap.String("role", m.Role))
	return inv, nil
}

// Validation is the outcome of checking a code before redeeming it. When
// Valid is false, Message explains why in user-facing words.
type Validation struct {
	Valid     bool
	Message   string
	GroupID   string
	GroupName string
	GoalID    string
}

// ValidateCode checks whether a code could currently be redeemed, without
// writing anything. Backend failures read as an inactive code; the user
// retries, the log has the details.
func (s *Service) ValidateCode(ctx context.Context, code string) Validation {
	code = strings.ToUpper(strings.TrimSpace(code))

	inv, err := s.invites.FindByCode(ctx, code)
	if err != nil {
		if err != groupinvitestore.ErrNotFound {
			s.log.Error("inviteexchange: code lookup failed",
				zap.String("code", code), zap.Error(err))
			return Validation{Message: msgValidateFailed}
		}
		return Validation{Message: msgCodeNotActive}
	}

	if inv.Status != models.InviteActive {
		return Validation{Message: msgInviteNotActive}
	}
	if time.Now().After(inv.ExpiresAt) {
		return Validation{Message: msgInviteExpired}
	}
	if inv.UsesCount >= inv.MaxUses {
		return Validation{Message: msgInviteExhausted}
	}

	name := defaultGroupName
	if g, err := s.groups.GetByID(ctx, inv.GroupID); err == nil && g.Name != "" {
		name = g.Name
	}
	return Validation{
		Valid:     true,
		GroupID:   inv.GroupID,
		GroupName: name,
		GoalID:    inv.GoalID,
	}
}

// RedeemResult is the outcome of a redemption attempt. Status is one of
// StatusJoined, StatusFull or StatusError; Message carries the matching
// user-facing words.
type RedeemResult struct {
	Success bool
	Status  string
	Message string
	GroupID string
	GoalID  string
}

// Redeem joins the user to the invite's group. The group's capacity is
// checked before anything else about the user; a full group is recorded in
// the redemption log and reported even to someone who already belongs.
// Already being a member of a group with room counts as success and
// consumes nothing. The capacity check and the join are separate writes,
// so simultaneous redemptions can push a group past its limit.
func (s *Service) Redeem(ctx context.Context, userID, code string) RedeemResult {
	code = strings.ToUpper(strings.TrimSpace(code))

	inv, err := s.invites.FindByCode(ctx, code)
	if err != nil {
		if err != groupinvitestore.ErrNotFound {
			s.log.Error("inviteexchange: redeem lookup failed",
				zap.String("code", code), zap.Error(err))
		}
		return RedeemResult{Status: StatusError, Message: msgRedeemInvalid}
	}

	if inv.Status != models.InviteActive {
		return RedeemResult{Status: StatusError, Message: msgRedeemInactive}
	}
	if time.Now().After(inv.ExpiresAt) {
		return RedeemResult{Status: StatusError, Message: msgRedeemExpired}
	}
	if inv.UsesCount >= inv.MaxUses {
		return RedeemResult{Status: StatusError, Message: msgRedeemExhausted}
	}

	group, err := s.groups.GetByID(ctx, inv.GroupID)
	if err != nil {
		s.log.Error("inviteexchange: group lookup failed",
			zap.String("group_id", inv.GroupID), zap.Error(err))
		return RedeemResult{Status: StatusError, Message: msgRedeemFailed}
	}

	if !group.HasCapacity() {
		s.record(ctx, inv, userID, models.RedemptionFull)
		return RedeemResult{
			Status:  StatusFull,
			Message: msgRedeemFull,
			GroupID: group.ID,
			GoalID:  inv.GoalID,
		}
	}

	// Idempotent re-redemption: already a member, nothing to consume.
	if _, err := s.memberships.GetByUserGroup(ctx, userID, group.ID); err == nil {
		return RedeemResult{
			Success: true,
			Status:  StatusJoined,
			Message: msgRedeemJoined,
			GroupID: group.ID,
			GoalID:  inv.GoalID,
		}
	} else if err != membershipstore.ErrNotFound {
		s.log.Error("inviteexchange: membership lookup failed",
			zap.String("user_id", userID), zap.Error(err))
		return RedeemResult{Status: StatusError, Message: msgRedeemFailed}
	}

	_, err = s.memberships.Create(ctx, models.Membership{
		UserID:  userID,
		GroupID: group.ID,
		GoalID:  inv.GoalID,
		Role:    models.RoleMember,
	})
	if err != nil && err != membershipstore.ErrDuplicate {
		s.log.Error("inviteexchange: membership create failed",
			zap.String("user_id", userID),
			zap.String("group_id", group.ID),
			zap.Error(err))
		return RedeemResult{Status: StatusError, Message: msgRedeemFailed}
	}

	if err := s.invites.IncUses(ctx, inv.ID); err != nil {
		s.log.Warn("inviteexchange: uses increment failed",
			zap.String("invite_id", inv.ID), zap.Error(err))
	}
	if err := s.groups.IncMemberCount(ctx, group.ID, 1); err != nil {
		s.log.Warn("inviteexchange: member count increment failed",
			zap.String("group_id", group.ID), zap.Error(err))
	}
	s.record(ctx, inv, userID, models.RedemptionJoined)

	if err := s.users.SetCurrentAssignment(ctx, userID, inv.GoalID, group.ID); err != nil {
		s.log.Warn("inviteexchange: current assignment update failed",
			zap.String("user_id", userID), zap.Error(err))
	}
	s.announce(ctx, userID, group.ID)

	s.log.Info("inviteexchange: invite redeemed",
		zap.String("invite_id", inv.ID),
		zap.String("user_id", userID),
		zap.String("group_id", group.ID))
	return RedeemResult{
		Success: true,
		Status:  StatusJoined,
		Message: msgRedeemJoined,
		GroupID: group.ID,
		GoalID:  inv.GoalID,
	}
}

// record appends to the redemption log. Best effort; the join itself is
// what the user cares about.
func (s *Service) record(ctx context.Context, inv models.GroupInvite, userID, outcome string) {
	_, err := s.redemptions.Append(ctx, models.InviteRedemption{
		InviteID:         inv.ID,
		GroupID:          inv.GroupID,
		GoalID:           inv.GoalID,
		InviterUserID:    inv.CreatedByUserID,
		RedeemedByUserID: userID,
		Outcome:          outcome,
	})
	if err != nil {
		s.log.Warn("inviteexchange: redemption log append failed",
			zap.String("invite_id", inv.ID), zap.Error(err))
	}
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
		s.log.Warn("inviteexchange: join announcement failed",
			zap.String("group_id", groupID), zap.Error(err))
	}
}
