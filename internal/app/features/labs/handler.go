// internal/app/features/labs/handler.go
package labs

import (
	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	labstore "github.com/pathlabhq/pathlab/internal/app/store/labs"
	reportstore "github.com/pathlabhq/pathlab/internal/app/store/reports"
	userstore "github.com/pathlabhq/pathlab/internal/app/store/users"
	"github.com/pathlabhq/pathlab/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for labs (tenants).
type Handler struct {
	DB      *mongo.Database
	Labs    *labstore.Store
	Users   *userstore.Store
	Reports *reportstore.Store
	Audit   *auditlog.Logger
	ErrLog  *apierrors.ErrorLogger
	Log     *zap.Logger
}

// NewHandler constructs a labs Handler bound to a DB and logger.
func NewHandler(db *mongo.Database, audit *auditlog.Logger, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Labs:    labstore.New(db),
		Users:   userstore.New(db),
		Reports: reportstore.New(db),
		Audit:   audit,
		ErrLog:  errLog,
		Log:     logger,
	}
}
