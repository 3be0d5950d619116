// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for user profiles, mounted under /v1/users.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{userID}", h.Get)
	r.Put("/{userID}", h.UpdateProfile)
	r.Post("/{userID}/push-tokens", h.AddPushToken)
	r.Post("/{userID}/activity", h.TouchActivity)
	return r
}
