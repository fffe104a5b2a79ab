// internal/app/features/users/handler.go
package users

import (
	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	labstore "github.com/pathlabhq/pathlab/internal/app/store/labs"
	userstore "github.com/pathlabhq/pathlab/internal/app/store/users"
	"github.com/pathlabhq/pathlab/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for staff management.
type Handler struct {
	DB     *mongo.Database
	Users  *userstore.Store
	Labs   *labstore.Store
	Audit  *auditlog.Logger
	ErrLog *apierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a users Handler bound to a DB and logger.
func NewHandler(db *mongo.Database, audit *auditlog.Logger, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Users:  userstore.New(db),
		Labs:   labstore.New(db),
		Audit:  audit,
		ErrLog: errLog,
		Log:    logger,
	}
}
