// internal/app/features/auth/me.go
package auth

import (
	"net/http"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeMe returns the signed-in user's record.
// GET /auth/me
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log)
	defer cancel()

	u, err := h.Users.GetByID(ctx, g.Actor.UserID)
	if err == mongo.ErrNoDocuments {
		// Valid token for a deleted account (e.g. lab cascade).
		apierrors.RenderUnauthorized(w, r, "Account no longer exists")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch current user failed", err, "Unable to load account.")
		return
	}

	respond.Data(w, http.StatusOK, u)
}
