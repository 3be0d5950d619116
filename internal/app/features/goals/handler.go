// internal/app/features/goals/handler.go
package goals

import (
	"context"
	"net/http"

	"github.com/instephq/instep/internal/app/features/shared"
	"github.com/instephq/instep/internal/app/service/goalassign"
	goalrequeststore "github.com/instephq/instep/internal/app/store/goalrequests"
	waitliststore "github.com/instephq/instep/internal/app/store/waitlist"
	"github.com/instephq/instep/internal/app/system/sanitize"
	"github.com/instephq/instep/internal/app/system/timeouts"
	"github.com/instephq/instep/internal/domain/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the goal catalog, goal starts and progress reads, plus the
// request/waitlist paths for goals a user cannot start yet.
type Handler struct {
	Svc      *goalassign.Service
	Requests *goalrequeststore.Store
	Waitlist *waitliststore.Store
	Log      *zap.Logger
}

func NewHandler(svc *goalassign.Service, requests *goalrequeststore.Store, waitlist *waitliststore.Store, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Requests: requests, Waitlist: waitlist, Log: logger}
}

// List handles GET /v1/goals. Always 200; backend trouble reads as an
// empty catalog.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	shared.JSON(w, http.StatusOK, h.Svc.GetAvailableGoals(ctx))
}

// Start handles POST /v1/goals/{goalID}/start.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
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

	rec, err := h.Svc.StartGoal(ctx, body.UserID, chi.URLParam(r, "goalID"))
	if err != nil {
		h.Log.Error("start goal failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not start goal")
		return
	}
	shared.JSON(w, http.StatusOK, rec)
}

// Progress handles GET /v1/goals/{goalID}/progress?userId=...
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		shared.Error(w, http.StatusBadRequest, "userId is required")
		return
	}

	rec := h.Svc.GetProgress(ctx, userID, chi.URLParam(r, "goalID"))
	if rec == nil {
		shared.Error(w, http.StatusNotFound, "no progress for this goal")
		return
	}
	shared.JSON(w, http.StatusOK, rec)
}

// Request handles POST /v1/goals/requests: a user asking for a goal the
// catalog doesn't offer, or to join one that isn't open.
func (h *Handler) Request(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var body struct {
		UserID string `json:"userId"`
		Text   string `json:"text"`
		Type   string `json:"type"`
		GoalID string `json:"goalId"`
	}
	if !shared.Decode(w, r, &body) {
		return
	}
	if body.UserID == "" {
		shared.Error(w, http.StatusBadRequest, "userId is required")
		return
	}
	if body.Type != models.RequestNewGoal && body.Type != models.RequestJoinGoal {
		shared.Error(w, http.StatusBadRequest, "type must be new_goal or join_goal")
		return
	}

	req, err := h.Requests.Create(ctx, models.GoalRequest{
		UserID:            body.UserID,
		RequestedGoalText: sanitize.Text(body.Text),
		Type:              body.Type,
		GoalID:            body.GoalID,
	})
	if err != nil {
		h.Log.Error("goal request create failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not record request")
		return
	}
	shared.JSON(w, http.StatusCreated, req)
}

// JoinWaitlist handles POST /v1/goals/{goalID}/waitlist.
func (h *Handler) JoinWaitlist(w http.ResponseWriter, r *http.Request) {
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

	entry, err := h.Waitlist.Join(ctx, body.UserID, chi.URLParam(r, "goalID"))
	if err != nil {
		h.Log.Error("waitlist join failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not join waitlist")
		return
	}
	shared.JSON(w, http.StatusOK, entry)
}
