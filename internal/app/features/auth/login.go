// internal/app/features/auth/login.go
package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	userstore "github.com/pathlabhq/pathlab/internal/app/store/users"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"github.com/pathlabhq/pathlab/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// HandleLogin verifies credentials and returns a bearer token.
// POST /auth/login
//
// All credential failures return the same 401 message; the audit trail
// records which case actually happened.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode login body failed", err, "Invalid request body.")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		apierrors.RenderValidation(w, r, "Please provide an email and password.")
		return
	}

	if allowed, msg := h.Limits.Check(r, req.Email); !allowed {
		apierrors.RenderTooManyRequests(w, r, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err == mongo.ErrNoDocuments {
		h.Audit.LoginFailedUserNotFound(ctx, r, req.Email)
		apierrors.RenderUnauthorized(w, r, "Invalid credentials")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "lookup user failed", err, "Unable to sign in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		h.Audit.LoginFailedWrongPassword(ctx, r, u.ID, u.LabID, u.Email)
		apierrors.RenderUnauthorized(w, r, "Invalid credentials")
		return
	}

	if u.Status == userstore.StatusDisabled {
		h.Audit.LoginFailedUserDisabled(ctx, r, u.ID, u.LabID, u.Email)
		apierrors.RenderUnauthorized(w, r, "Invalid credentials")
		return
	}

	h.Limits.ResetEmail(u.Email)
	h.Audit.LoginSuccess(ctx, r, u.ID, u.LabID, u.Email)
	h.writeToken(w, r, u, http.StatusOK)
}

// writeToken mints a token for u and writes the token envelope.
func (h *Handler) writeToken(w http.ResponseWriter, r *http.Request, u models.User, status int) {
	tok, err := h.Tokens.Mint(u)
	if err != nil {
		h.Log.Error("mint token failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		apierrors.RenderUnauthorized(w, r, "Unable to issue token")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(tokenResponse{Success: true, Token: tok})
}
