// internal/app/features/groups/handler.go
package groups

import (
	"context"
	"net/http"

	"github.com/instephq/instep/internal/app/features/shared"
	"github.com/instephq/instep/internal/app/service/groupassign"
	groupstore "github.com/instephq/instep/internal/app/store/groups"
	"github.com/instephq/instep/internal/app/system/timeouts"
	"github.com/instephq/instep/internal/domain/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves group assignment, group detail reads and guide
// management.
type Handler struct {
	Svc    *groupassign.Service
	Groups *groupstore.Store
	Log    *zap.Logger
}

func NewHandler(svc *groupassign.Service, groups *groupstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Groups: groups, Log: logger}
}

// Assign handles POST /v1/groups/assign: place the user in a group for a
// goal, joining or creating one as needed.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var body struct {
		UserID string `json:"userId"`
		GoalID string `json:"goalId"`
	}
	if !shared.Decode(w, r, &body) {
		return
	}
	if body.UserID == "" || body.GoalID == "" {
		shared.Error(w, http.StatusBadRequest, "userId and goalId are required")
		return
	}

	groupID, err := h.Svc.AssignUserToGroup(ctx, body.UserID, body.GoalID)
	if err != nil {
		h.Log.Error("group assignment failed",
			zap.String("user_id", body.UserID),
			zap.String("goal_id", body.GoalID),
			zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not assign group")
		return
	}
	shared.JSON(w, http.StatusOK, map[string]string{"groupId": groupID})
}

// groupDetail is a group with its member list.
type groupDetail struct {
	models.Group
	Members []models.Membership `json:"members"`
}

// Get handles GET /v1/groups/{groupID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id := chi.URLParam(r, "groupID")
	g, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		if err == groupstore.ErrNotFound {
			shared.Error(w, http.StatusNotFound, "group not found")
			return
		}
		h.Log.Error("group lookup failed", zap.String("group_id", id), zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not load group")
		return
	}

	shared.JSON(w, http.StatusOK, groupDetail{Group: g, Members: h.Svc.GetGroupMembers(ctx, id)})
}

// GetGuide handles GET /v1/groups/{groupID}/guide.
func (h *Handler) GetGuide(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id := chi.URLParam(r, "groupID")
	guide := h.Svc.GetGroupGuide(ctx, id)
	if guide == nil {
		shared.Error(w, http.StatusNotFound, "group has no guide")
		return
	}
	shared.JSON(w, http.StatusOK, guide)
}

// PromoteGuide handles POST /v1/groups/{groupID}/guide: make an existing
// member the group's guide.
func (h *Handler) PromoteGuide(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var body struct {
		UserID string `json:"userId"`
	}
	if !shared.Decode(w, r, &body) {
		return
	}
	if body.UserID == "" {
		shared.Error(w, http.StatusBadRequest, "userId is required")
		return
	}

	groupID := chi.URLParam(r, "groupID")
	if err := h.Svc.PromoteToGuide(ctx, body.UserID, groupID); err != nil {
		h.Log.Error("guide promotion failed",
			zap.String("user_id", body.UserID),
			zap.String("group_id", groupID),
			zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not promote member")
		return
	}
	shared.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
