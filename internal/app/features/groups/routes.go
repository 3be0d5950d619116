// internal/app/features/groups/routes.go
package groups

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for group endpoints, mounted under /v1/groups.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/assign", h.Assign)
	r.Get("/{groupID}", h.Get)
	r.Get("/{groupID}/guide", h.GetGuide)
	r.Post("/{groupID}/guide", h.PromoteGuide)
	return r
}
