// internal/app/features/auth/register.go
package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	userstore "github.com/pathlabhq/pathlab/internal/app/store/users"
	"github.com/pathlabhq/pathlab/internal/app/system/authz"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"github.com/pathlabhq/pathlab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// HandleRegister bootstraps the first account.
// POST /auth/register
//
// Registration is open only while the users collection is empty: the
// first account becomes the super-admin, and every later account is
// created by an admin through the users feature. An open registration
// endpoint on a multi-tenant system would let anyone mint accounts.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode register body failed", err, "Invalid request body.")
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log)
	defer cancel()

	n, err := h.Users.Count(ctx, bson.M{})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count users failed", err, "Unable to register.")
		return
	}
	if n > 0 {
		apierrors.RenderForbidden(w, r, "Registration is closed; ask your lab admin for an account.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, "Unable to register.")
		return
	}

	u, err := h.Users.Create(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         authz.RoleSuperAdmin,
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			apierrors.RenderConflict(w, r, "A user with this email already exists.")
			return
		}
		h.ErrLog.LogServerError(w, r, "create user failed", err, "Unable to register.")
		return
	}

	h.Audit.UserRegistered(ctx, r, u.ID, u.Email, u.Role)
	h.writeToken(w, r, u, http.StatusCreated)
}
