// internal/app/features/invites/routes.go
package invites

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for invites, mounted under /v1/invites.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/validate", h.Validate)
	r.Post("/redeem", h.Redeem)
	r.Get("/pending", h.Pending)
	r.Post("/{inviteID}/respond", h.Respond)
	return r
}
