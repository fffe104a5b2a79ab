// internal/app/features/auditlog/handler.go
package auditlog

import (
	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	"github.com/pathlabhq/pathlab/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	Events *audit.Store
	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger
}

// NewHandler constructs an audit log feature handler bound to the given
// Mongo database and logger.
func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Events: audit.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}
