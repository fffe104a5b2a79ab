// internal/app/features/reports/handler.go
package reports

import (
	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	labstore "github.com/pathlabhq/pathlab/internal/app/store/labs"
	reportstore "github.com/pathlabhq/pathlab/internal/app/store/reports"
	"github.com/pathlabhq/pathlab/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for diagnostic reports.
type Handler struct {
	DB      *mongo.Database
	Reports *reportstore.Store
	Labs    *labstore.Store
	Audit   *auditlog.Logger
	ErrLog  *apierrors.ErrorLogger
	Log     *zap.Logger
}

// NewHandler constructs a reports Handler bound to a DB and logger.
func NewHandler(db *mongo.Database, audit *auditlog.Logger, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Reports: reportstore.New(db),
		Labs:    labstore.New(db),
		Audit:   audit,
		ErrLog:  errLog,
		Log:     logger,
	}
}
