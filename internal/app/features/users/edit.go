// internal/app/features/users/edit.go
package users

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	"github.com/pathlabhq/pathlab/internal/app/policy/rolepolicy"
	"github.com/pathlabhq/pathlab/internal/app/store/audit"
	userstore "github.com/pathlabhq/pathlab/internal/app/store/users"
	"github.com/pathlabhq/pathlab/internal/app/system/authz"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"github.com/pathlabhq/pathlab/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// loadUser parses the {id} URL param, fetches the user, and enforces the
// tenant boundary: admins reach only their own lab's staff, and nobody
// below super-admin touches a super-admin account.
func (h *Handler) loadUser(ctx context.Context, w http.ResponseWriter, r *http.Request, actor authz.Actor) (models.User, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.RenderBadRequest(w, r, "Invalid user ID.")
		return models.User{}, false
	}

	u, err := h.Users.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		apierrors.RenderNotFound(w, r, "User not found.")
		return models.User{}, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch user failed", err, "Unable to load user.")
		return models.User{}, false
	}

	if !actor.IsSuperAdmin() {
		if u.Role == authz.RoleSuperAdmin || u.LabID == nil || *u.LabID != actor.LabID {
			apierrors.RenderForbidden(w, r, "You can only manage staff in your own lab.")
			return models.User{}, false
		}
	}
	return u, true
}

// ServeGet returns a single staff member.
// GET /users/{id}
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
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

	respond.Data(w, http.StatusOK, u)
}

// HandleUpdate edits a staff member's name, email, role, or status.
// Promotions to super-admin are rejected for everyone.
// PUT /users/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.UserManage)
	if !g.OK {
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode user body failed", err, "Invalid request body.")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Role != "" && (!authz.ValidRole(req.Role) || req.Role == authz.RoleSuperAdmin) {
		apierrors.RenderValidation(w, r, "Role must be admin, technician, or receptionist.")
		return
	}
	if req.Status != "" && req.Status != userstore.StatusActive && req.Status != userstore.StatusDisabled {
		apierrors.RenderValidation(w, r, "Status must be active or disabled.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log)
	defer cancel()

	u, ok := h.loadUser(ctx, w, r, g.Actor)
	if !ok {
		return
	}

	err := h.Users.Update(ctx, u.ID, models.User{
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Status: req.Status,
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			apierrors.RenderConflict(w, r, "A user with this email already exists.")
			return
		}
		h.ErrLog.LogServerError(w, r, "update user failed", err, "Unable to update user.")
		return
	}

	updated, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch updated user failed", err, "Unable to load user.")
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventUserUpdated, g.Actor.UserID, u.LabID, &u.ID, nil)
	respond.Data(w, http.StatusOK, updated)
}
