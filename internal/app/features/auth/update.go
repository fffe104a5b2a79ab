// internal/app/features/auth/update.go
package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	userstore "github.com/pathlabhq/pathlab/internal/app/store/users"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"golang.org/x/crypto/bcrypt"
)

// HandleUpdateDetails changes the signed-in user's name and/or email.
// PUT /auth/updatedetails
func (h *Handler) HandleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	var req updateDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode update details body failed", err, "Invalid request body.")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" && req.Email == "" {
		apierrors.RenderValidation(w, r, "Provide a name or an email to update.")
		return
	}
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		apierrors.RenderValidation(w, r, "Please provide a valid email.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log)
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, g.Actor.UserID, req.Name, req.Email); err != nil {
		if err == userstore.ErrDuplicateEmail {
			apierrors.RenderConflict(w, r, "A user with this email already exists.")
			return
		}
		h.ErrLog.LogServerError(w, r, "update details failed", err, "Unable to update details.")
		return
	}

	u, err := h.Users.GetByID(ctx, g.Actor.UserID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch updated user failed", err, "Unable to load account.")
		return
	}

	respond.Data(w, http.StatusOK, u)
}

// HandleUpdatePassword changes the signed-in user's password after
// verifying the current one.
// PUT /auth/updatepassword
func (h *Handler) HandleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode update password body failed", err, "Invalid request body.")
		return
	}
	if len(req.NewPassword) < minPasswordLength {
		apierrors.RenderValidation(w, r, "Password must be at least 8 characters.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log)
	defer cancel()

	u, err := h.Users.GetByID(ctx, g.Actor.UserID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch current user failed", err, "Unable to update password.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		apierrors.RenderUnauthorized(w, r, "Current password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, "Unable to update password.")
		return
	}
	if err := h.Users.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		h.ErrLog.LogServerError(w, r, "store password failed", err, "Unable to update password.")
		return
	}

	h.Audit.PasswordChanged(ctx, r, u.ID, u.LabID)

	// Issue a fresh token so clients can rotate immediately.
	h.writeToken(w, r, u, http.StatusOK)
}
