// internal/app/features/reports/routes.go
package reports

import (
	sysauth "github.com/pathlabhq/pathlab/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all report routes under the base path (typically
// "/reports" from bootstrap). Role capability and record-level checks
// live in the handlers.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sysauth.RequireSignedIn)

		pr.Post("/", h.HandleCreate)
		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeGet)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Put("/{id}/verify", h.HandleVerify)
		pr.Post("/{id}/comments", h.HandleAddComment)
	})

	return r
}
