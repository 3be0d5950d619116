// internal/app/features/invites/handler.go
package invites

import (
	"context"
	"net/http"

	"github.com/instephq/instep/internal/app/features/shared"
	"github.com/instephq/instep/internal/app/service/inviteexchange"
	groupstore "github.com/instephq/instep/internal/app/store/groups"
	invitestore "github.com/instephq/instep/internal/app/store/invites"
	membershipstore "github.com/instephq/instep/internal/app/store/memberships"
	userstore "github.com/instephq/instep/internal/app/store/users"
	"github.com/instephq/instep/internal/app/system/timeouts"
	"github.com/instephq/instep/internal/domain/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the invite exchange (shareable codes) plus the direct,
// targeted invites a user answers from their inbox.
type Handler struct {
	Svc         *inviteexchange.Service
	Direct      *invitestore.Store
	Memberships *membershipstore.Store
	Groups      *groupstore.Store
	Users       *userstore.Store
	Log         *zap.Logger
}

func NewHandler(svc *inviteexchange.Service, direct *invitestore.Store, memberships *membershipstore.Store, groups *groupstore.Store, users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Direct: direct, Memberships: memberships, Groups: groups, Users: users, Log: logger}
}

// Create handles POST /v1/invites: mint a shareable code for a group the
// caller belongs to.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var body struct {
		UserID  string `json:"userId"`
		GroupID string `json:"groupId"`
	}
	if !shared.Decode(w, r, &body) {
		return
	}
	if body.UserID == "" || body.GroupID == "" {
		shared.Error(w, http.StatusBadRequest, "userId and groupId are required")
		return
	}

	inv, err := h.Svc.CreateInvite(ctx, body.UserID, body.GroupID)
	if err != nil {
		if err == inviteexchange.ErrNotGroupMember {
			shared.Error(w, http.StatusForbidden, "not a member of this group")
			return
		}
		h.Log.Error("invite create failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not create invite")
		return
	}
	shared.JSON(w, http.StatusCreated, inv)
}

// Validate handles GET /v1/invites/validate?code=... Always 200; the body
// says whether the code would redeem and why not otherwise.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	shared.JSON(w, http.StatusOK, h.Svc.ValidateCode(ctx, r.URL.Query().Get("code")))
}

// Redeem handles POST /v1/invites/redeem. Always 200; the body carries the
// outcome and its user-facing message.
func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var body struct {
		UserID string `json:"userId"`
		Code   string `json:"code"`
	}
	if !shared.Decode(w, r, &body) {
		return
	}
	if body.UserID == "" {
		shared.Error(w, http.StatusBadRequest, "userId is required")
		return
	}

	shared.JSON(w, http.StatusOK, h.Svc.Redeem(ctx, body.UserID, body.Code))
}

// Pending handles GET /v1/invites/pending?userId=...: the user's direct
// invite inbox.
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		shared.Error(w, http.StatusBadRequest, "userId is required")
		return
	}

	invs, err := h.Direct.ListPendingByUser(ctx, userID)
	if err != nil {
		h.Log.Error("pending invites list failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not list invites")
		return
	}
	if invs == nil {
		invs = []models.Invite{}
	}
	shared.JSON(w, http.StatusOK, invs)
}

// Respond handles POST /v1/invites/{inviteID}/respond: accept or decline a
// direct invite. Accepting joins the invite's group.
func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var body struct {
		Accept bool `json:"accept"`
	}
	if !shared.Decode(w, r, &body) {
		return
	}

	id := chi.URLParam(r, "inviteID")
	inv, err := h.Direct.GetByID(ctx, id)
	if err != nil {
		if err == invitestore.ErrNotFound {
			shared.Error(w, http.StatusNotFound, "invite not found")
			return
		}
		h.Log.Error("invite lookup failed", zap.String("invite_id", id), zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not load invite")
		return
	}

	status := invitestore.StatusDeclined
	if body.Accept {
		status = invitestore.StatusAccepted
	}
	if err := h.Direct.SetStatus(ctx, id, status); err != nil {
		if err == invitestore.ErrNotFound {
			shared.Error(w, http.StatusConflict, "invite already answered")
			return
		}
		h.Log.Error("invite status update failed", zap.String("invite_id", id), zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not answer invite")
		return
	}

	if body.Accept {
		_, err := h.Memberships.Create(ctx, models.Membership{
			UserID:  inv.UserID,
			GroupID: inv.GroupID,
			GoalID:  inv.GoalID,
			Role:    models.RoleMember,
		})
		if err != nil && err != membershipstore.ErrDuplicate {
			h.Log.Error("membership create on accept failed",
				zap.String("invite_id", id), zap.Error(err))
			shared.Error(w, http.StatusInternalServerError, "could not join group")
			return
		}
		if err == nil {
			if err := h.Groups.IncMemberCount(ctx, inv.GroupID, 1); err != nil {
				h.Log.Warn("member count increment failed",
					zap.String("group_id", inv.GroupID), zap.Error(err))
			}
		}
		if err := h.Users.SetCurrentAssignment(ctx, inv.UserID, inv.GoalID, inv.GroupID); err != nil {
			h.Log.Warn("current assignment update failed",
				zap.String("user_id", inv.UserID), zap.Error(err))
		}
	}

	shared.JSON(w, http.StatusOK, map[string]any{
		"status":  status,
		"groupId": inv.GroupID,
	})
}
