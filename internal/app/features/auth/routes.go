// internal/app/features/auth/routes.go
package auth

import (
	sysauth "github.com/pathlabhq/pathlab/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the auth routes under the base path (typically "/auth"
// from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Public endpoints.
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	// Signed-in endpoints.
	r.Group(func(pr chi.Router) {
		pr.Use(sysauth.RequireSignedIn)
		pr.Get("/me", h.ServeMe)
		pr.Put("/updatedetails", h.HandleUpdateDetails)
		pr.Put("/updatepassword", h.HandleUpdatePassword)
		pr.Get("/logout", h.HandleLogout)
	})

	return r
}
