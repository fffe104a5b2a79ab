// internal/app/features/labs/routes.go
package labs

import (
	sysauth "github.com/pathlabhq/pathlab/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all lab routes under the base path (typically "/labs"
// from bootstrap). Role capability and tenant checks live in the
// handlers; the route group only requires a signed-in user.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sysauth.RequireSignedIn)

		pr.Post("/", h.HandleCreate)
		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeGet)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Get("/{id}/stats", h.ServeStats)
		pr.Put("/{id}/subscription", h.HandleSubscription)
	})

	return r
}
