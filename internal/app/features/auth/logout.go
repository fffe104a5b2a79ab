// internal/app/features/auth/logout.go
package auth

import (
	"net/http"

	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
)

// HandleLogout records the logout for the audit trail. Tokens are
// stateless, so the client discards its copy; nothing is revoked
// server-side.
// GET /auth/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log)
	defer cancel()

	labID := g.Actor.LabID
	if g.Actor.IsSuperAdmin() {
		h.Audit.Logout(ctx, r, g.Actor.UserID, nil)
	} else {
		h.Audit.Logout(ctx, r, g.Actor.UserID, &labID)
	}

	respond.Message(w, http.StatusOK, "Signed out")
}
