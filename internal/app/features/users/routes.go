// internal/app/features/users/routes.go
package users

import (
	sysauth "github.com/pathlabhq/pathlab/internal/app/system/auth"
	"github.com/pathlabhq/pathlab/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all staff management routes under the base path
// (typically "/users" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sysauth.RequireSignedIn)
		pr.Use(sysauth.RequireRole(authz.RoleSuperAdmin, authz.RoleAdmin))

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}", h.ServeGet)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
