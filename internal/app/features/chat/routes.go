// internal/app/features/chat/routes.go
package chat

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for group chat, mounted under /v1/chat.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{groupID}/messages", h.History)
	r.Post("/{groupID}/messages", h.Post)
	r.Post("/{groupID}/messages/{messageID}/cheer", h.Cheer)
	return r
}
