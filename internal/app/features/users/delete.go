// internal/app/features/users/delete.go
package users

import (
	"net/http"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	"github.com/pathlabhq/pathlab/internal/app/policy/rolepolicy"
	"github.com/pathlabhq/pathlab/internal/app/store/audit"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
)

// HandleDelete removes a staff member. Deleting yourself is rejected;
// reports the user created stay behind with their weak reference intact.
// DELETE /users/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.UserManage)
	if !g.OK {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log)
	defer cancel()

	u, ok := h.loadUser(ctx, w, r, g.Actor)
	if !ok {
		return
	}

	if u.ID == g.Actor.UserID {
		apierrors.RenderValidation(w, r, "You cannot delete your own account.")
		return
	}

	if _, err := h.Users.Delete(ctx, u.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "delete user failed", err, "Unable to delete user.")
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventUserDeleted, g.Actor.UserID, u.LabID, &u.ID,
		map[string]string{"email": u.Email, "role": u.Role})
	respond.Message(w, http.StatusOK, "User deleted")
}
