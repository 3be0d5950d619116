// internal/app/features/users/handler.go
package users

import (
	"context"
	"net/http"

	"github.com/instephq/instep/internal/app/features/shared"
	userstore "github.com/instephq/instep/internal/app/store/users"
	"github.com/instephq/instep/internal/app/system/sanitize"
	"github.com/instephq/instep/internal/app/system/timeouts"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves user profiles and device push tokens. Authentication is
// upstream; the user ID in the path is the upstream auth subject.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

// Get handles GET /v1/users/{userID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "userID")
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == userstore.ErrNotFound {
			shared.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("user lookup failed", zap.String("user_id", id), zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not load user")
		return
	}
	shared.JSON(w, http.StatusOK, u)
}

// UpdateProfile handles PUT /v1/users/{userID}.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var body struct {
		Name string `json:"name"`
		Bio  string `json:"bio"`
	}
	if !shared.Decode(w, r, &body) {
		return
	}

	id := chi.URLParam(r, "userID")
	if err := h.Users.UpsertProfile(ctx, id, sanitize.Text(body.Name), sanitize.Text(body.Bio)); err != nil {
		h.Log.Error("profile update failed", zap.String("user_id", id), zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not update profile")
		return
	}
	shared.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// AddPushToken handles POST /v1/users/{userID}/push-tokens.
func (h *Handler) AddPushToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var body struct {
		Token string `json:"token"`
	}
	if !shared.Decode(w, r, &body) {
		return
	}
	if body.Token == "" {
		shared.Error(w, http.StatusBadRequest, "token is required")
		return
	}

	id := chi.URLParam(r, "userID")
	if err := h.Users.AddPushToken(ctx, id, body.Token); err != nil {
		h.Log.Error("push token add failed", zap.String("user_id", id), zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not save token")
		return
	}
	shared.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// TouchActivity handles POST /v1/users/{userID}/activity.
func (h *Handler) TouchActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "userID")
	if err := h.Users.TouchLastActive(ctx, id); err != nil {
		h.Log.Warn("activity touch failed", zap.String("user_id", id), zap.Error(err))
	}
	shared.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
