// internal/app/features/goals/routes.go
package goals

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the goal catalog endpoints, mounted under
// /v1/goals.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/requests", h.Request)
	r.Post("/{goalID}/start", h.Start)
	r.Get("/{goalID}/progress", h.Progress)
	r.Post("/{goalID}/waitlist", h.JoinWaitlist)
	return r
}
