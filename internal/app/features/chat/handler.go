// internal/app/features/chat/handler.go
package chat

import (
	"context"
	"net/http"
	"strconv"

	"github.com/instephq/instep/internal/app/features/shared"
	chatstore "github.com/instephq/instep/internal/app/store/chat"
	membershipstore "github.com/instephq/instep/internal/app/store/memberships"
	"github.com/instephq/instep/internal/app/system/sanitize"
	"github.com/instephq/instep/internal/app/system/timeouts"
	"github.com/instephq/instep/internal/domain/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DefaultHistoryLimit bounds message history when the client does not ask
// for a specific page size.
const DefaultHistoryLimit = 100

// Handler serves group chat: history, posting and cheering.
type Handler struct {
	Messages    *chatstore.Store
	Memberships *membershipstore.Store
	Log         *zap.Logger
}

func NewHandler(messages *chatstore.Store, memberships *membershipstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Messages: messages, Memberships: memberships, Log: logger}
}

// History handles GET /v1/chat/{groupID}/messages?limit=...
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	limit := DefaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	msgs, err := h.Messages.ListByGroup(ctx, chi.URLParam(r, "groupID"), limit)
	if err != nil {
		h.Log.Error("chat history failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not load messages")
		return
	}
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	shared.JSON(w, http.StatusOK, msgs)
}

// Post handles POST /v1/chat/{groupID}/messages. Only group members can
// post.
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var body struct {
		UserID    string `json:"userId"`
		UserName  string `json:"userName"`
		UserPhoto string `json:"userPhoto"`
		Text      string `json:"text"`
	}
	if !shared.Decode(w, r, &body) {
		return
	}
	text := sanitize.Text(body.Text)
	if body.UserID == "" || text == "" {
		shared.Error(w, http.StatusBadRequest, "userId and text are required")
		return
	}

	groupID := chi.URLParam(r, "groupID")
	if _, err := h.Memberships.GetByUserGroup(ctx, body.UserID, groupID); err != nil {
		if err == membershipstore.ErrNotFound {
			shared.Error(w, http.StatusForbidden, "not a member of this group")
			return
		}
		h.Log.Error("membership check failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not post message")
		return
	}

	msg, err := h.Messages.Append(ctx, models.ChatMessage{
		GroupID:   groupID,
		UserID:    body.UserID,
		UserName:  body.UserName,
		UserPhoto: body.UserPhoto,
		Text:      text,
		Type:      models.MessageUser,
	})
	if err != nil {
		h.Log.Error("message append failed", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not post message")
		return
	}
	shared.JSON(w, http.StatusCreated, msg)
}

// Cheer handles POST /v1/chat/{groupID}/messages/{messageID}/cheer. A
// user's repeat cheers for the same message do not move the counter.
func (h *Handler) Cheer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
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

	id := chi.URLParam(r, "messageID")
	added, err := h.Messages.Cheer(ctx, id, body.UserID)
	if err != nil {
		if err == chatstore.ErrNotFound {
			shared.Error(w, http.StatusNotFound, "message not found")
			return
		}
		h.Log.Error("cheer failed", zap.String("message_id", id), zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not cheer")
		return
	}
	shared.JSON(w, http.StatusOK, map[string]bool{"ok": true, "cheered": added})
}
