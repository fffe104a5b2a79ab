// internal/app/features/users/create.go
package users

import (
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
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// HandleCreate adds a staff member. Admins create staff in their own
// lab; super-admins name the lab and typically create its first admin.
// Nobody creates super-admins through this surface.
// POST /users
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.UserManage)
	if !g.OK {
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode user body failed", err, "Invalid request body.")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || !strings.Contains(req.Email, "@") {
		apierrors.RenderValidation(w, r, "Please provide a name and a valid email.")
		return
	}
	if len(req.Password) < minPasswordLength {
		apierrors.RenderValidation(w, r, "Password must be at least 8 characters.")
		return
	}
	if !authz.ValidRole(req.Role) || req.Role == authz.RoleSuperAdmin {
		apierrors.RenderValidation(w, r, "Role must be admin, technician, or receptionist.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log)
	defer cancel()

	var labID primitive.ObjectID
	if g.Actor.IsSuperAdmin() {
		if req.LabID == "" {
			apierrors.RenderValidation(w, r, "labId is required.")
			return
		}
		var err error
		labID, err = primitive.ObjectIDFromHex(req.LabID)
		if err != nil {
			apierrors.RenderBadRequest(w, r, "Invalid labId.")
			return
		}
		if _, err := h.Labs.GetByID(ctx, labID); err == mongo.ErrNoDocuments {
			apierrors.RenderNotFound(w, r, "Lab not found.")
			return
		} else if err != nil {
			h.ErrLog.LogServerError(w, r, "fetch lab failed", err, "Unable to create user.")
			return
		}
	} else {
		// Admins cannot plant users in other labs.
		labID = g.Actor.LabID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, "Unable to create user.")
		return
	}

	u, err := h.Users.Create(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		LabID:        &labID,
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			apierrors.RenderConflict(w, r, "A user with this email already exists.")
			return
		}
		h.ErrLog.LogServerError(w, r, "create user failed", err, "Unable to create user.")
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventUserCreated, g.Actor.UserID, &labID, &u.ID,
		map[string]string{"email": u.Email, "role": u.Role})
	respond.Data(w, http.StatusCreated, u)
}
