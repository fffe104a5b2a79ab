// internal/app/features/auth/handler.go
package auth

import (
	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	userstore "github.com/pathlabhq/pathlab/internal/app/store/users"
	"github.com/pathlabhq/pathlab/internal/app/system/auditlog"
	sysauth "github.com/pathlabhq/pathlab/internal/app/system/auth"
	"github.com/pathlabhq/pathlab/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for authentication and the
// signed-in user's own account.
type Handler struct {
	DB     *mongo.Database
	Users  *userstore.Store
	Tokens *sysauth.Manager
	Audit  *auditlog.Logger
	Limits *ratelimit.LoginLimiter
	ErrLog *apierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs an auth Handler.
func NewHandler(db *mongo.Database, tokens *sysauth.Manager, audit *auditlog.Logger, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Users:  userstore.New(db),
		Tokens: tokens,
		Audit:  audit,
		Limits: ratelimit.NewLoginLimiter(),
		ErrLog: errLog,
		Log:    logger,
	}
}
