// internal/app/features/auditlog/routes.go
package auditlog

import (
	sysauth "github.com/pathlabhq/pathlab/internal/app/system/auth"
	"github.com/pathlabhq/pathlab/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all audit log routes under the path where this router is
// mounted (typically "/audit" from bootstrap).
//
// Access is restricted to super-admins and lab admins. Super-admins see
// all events; admins see only their own lab's events.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sysauth.RequireSignedIn)
		pr.Use(sysauth.RequireRole(authz.RoleSuperAdmin, authz.RoleAdmin))

		pr.Get("/", h.ServeList)
	})

	return r
}
