package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pathlabhq/pathlab/internal/domain/models"
	"go.uber.org/zap"
)

// Manager mints and verifies the signed bearer tokens the SPA stores
// client-side. Tokens are stateless; logout is a client-side discard.
type Manager struct {
	secret []byte
	expiry time.Duration
	log    *zap.Logger
}

// claims is the JWT payload. LabID is empty for super-admins.
type claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	LabID string `json:"lab_id,omitempty"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid or expired token")

// NewManager builds a token Manager. The signing secret must be strong in
// production; short secrets get a warning, not a failure, to keep local
// development frictionless.
func NewManager(secret string, expiry time.Duration, logger *zap.Logger) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty; provide ≥32 random chars")
	}
	if len(secret) < 32 {
		logger.Warn("jwt secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), expiry: expiry, log: logger}, nil
}

// Mint issues a signed token for the given user record.
func (m *Manager) Mint(u models.User) (string, error) {
	now := time.Now().UTC()
	c := claims{
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}
	if u.LabID != nil {
		c.LabID = u.LabID.Hex()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// Verify parses and validates a token string, returning the embedded user.
func (m *Manager) Verify(raw string) (*TokenUser, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return &TokenUser{
		ID:    c.Subject,
		Name:  c.Name,
		Email: c.Email,
		Role:  c.Role,
		LabID: c.LabID,
	}, nil
}
