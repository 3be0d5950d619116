// internal/app/features/checkins/routes.go
package checkins

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for check-ins, mounted under /v1/checkins.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Submit)
	r.Get("/", h.List)
	return r
}

// AffirmationRoutes returns a subrouter for affirmations, mounted under
// /v1/affirmations.
func AffirmationRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.AddAffirmation)
	r.Get("/", h.ListAffirmations)
	return r
}
