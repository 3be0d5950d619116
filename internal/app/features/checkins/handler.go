// internal/app/features/checkins/handler.go
package checkins

import (
	"context"
	"net/http"
	"strconv"

	"github.com/instephq/instep/internal/app/features/shared"
	"github.com/instephq/instep/internal/app/service/goalassign"
	affirmationstore "github.com/instephq/instep/internal/app/store/affirmations"
	"github.com/instephq/instep/internal/app/system/sanitize"
	"github.com/instephq/instep/internal/app/system/timeouts"
	"github.com/instephq/instep/internal/domain/models"

	"go.uber.org/zap"
)

// DefaultListLimit bounds journal listings when the client does not ask
// for a specific page size.
const DefaultListLimit = 50

// Handler serves check-in submission, the check-in journal and
// affirmations.
type Handler struct {
	Svc          *goalassign.Service
	Affirmations *affirmationstore.Store
	Log          *zap.Logger
}

func NewHandler(svc *goalassign.Service, affirmations *affirmationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Affirmations: affirmations, Log: logger}
}

// Submit handles POST /v1/checkins. The response always reports success;
// milestoneCompleted and progressPercent say how far the milestone branch
// got.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var body struct {
		UserID      string `json:"userId"`
		GoalID      string `json:"goalId"`
		GroupID     string `json:"groupId"`
		Note        string `json:"note"`
		MilestoneID string `json:"milestoneId"`
		PhotoURL    string `json:"photoUrl"`
	}
	if !shared.Decode(w, r, &body) {
		return
	}
	if body.UserID == "" || body.GoalID == "" {
		shared.Error(w, http.StatusBadRequest, "userId and goalId are required")
		return
	}

	res := h.Svc.SubmitCheckIn(ctx, goalassign.CheckInInput{
		UserID:      body.UserID,
		GoalID:      body.GoalID,
		GroupID:     body.GroupID,
		Note:        body.Note,
		MilestoneID: body.MilestoneID,
		PhotoURL:    body.PhotoURL,
	})
	shared.JSON(w, http.StatusOK, map[string]any{
		"success":                res.Success,
		"checkInId":              res.CheckInID,
		"milestoneCompleted":     res.MilestoneCompleted,
		"milestoneCompletedName": res.MilestoneCompletedName,
		"progressPercent":        res.ProgressPercent,
	})
}

// List handles GET /v1/checkins?userId=...&goalId=...&limit=...
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	userID := r.URL.Query().Get("userId")
	goalID := r.URL.Query().Get("goalId")
	if userID == "" || goalID == "" {
		shared.Error(w, http.StatusBadRequest, "userId and goalId are required")
		return
	}
	limit := DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	shared.JSON(w, http.StatusOK, h.Svc.GetCheckIns(ctx, userID, goalID, limit))
}

// AddAffirmation handles POST /v1/affirmations.
func (h *Handler) AddAffirmation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var body struct {
		UserID string `json:"userId"`
		Text   string `json:"text"`
	}
	if !shared.Decode(w, r, &body) {
		return
	}
	text := sanitize.Text(body.Text)
	if body.UserID == "" || text == "" {
		shared.Error(w, http.StatusBadRequest, "userId and text are required")
		return
	}

	a, err := h.Affirmations.Create(ctx, models.Affirmation{UserID: body.UserID, Text: text})
	if err != nil {
		h.Log.Error("affirmation create failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not save affirmation")
		return
	}
	shared.JSON(w, http.StatusCreated, a)
}

// ListAffirmations handles GET /v1/affirmations?userId=...&limit=...
func (h *Handler) ListAffirmations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		shared.Error(w, http.StatusBadRequest, "userId is required")
		return
	}
	limit := DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	as, err := h.Affirmations.ListByUser(ctx, userID, limit)
	if err != nil {
		h.Log.Error("affirmation list failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not list affirmations")
		return
	}
	if as == nil {
		as = []models.Affirmation{}
	}
	shared.JSON(w, http.StatusOK, as)
}
