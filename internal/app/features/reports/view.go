// internal/app/features/reports/view.go
package reports

import (
	"context"
	"net/http"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	"github.com/pathlabhq/pathlab/internal/app/policy/rolepolicy"
	"github.com/pathlabhq/pathlab/internal/app/policy/tenantpolicy"
	"github.com/pathlabhq/pathlab/internal/app/system/authz"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"github.com/pathlabhq/pathlab/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// loadReport parses the {id} URL param, fetches the report, and enforces
// record-level access: lab match for admins, ownership for technicians.
// It writes the error response and returns ok=false on any failure.
func (h *Handler) loadReport(ctx context.Context, w http.ResponseWriter, r *http.Request, actor authz.Actor) (models.Report, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.RenderBadRequest(w, r, "Invalid report ID.")
		return models.Report{}, false
	}

	rep, err := h.Reports.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		apierrors.RenderNotFound(w, r, "Report not found.")
		return models.Report{}, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch report failed", err, "Unable to load report.")
		return models.Report{}, false
	}

	if !tenantpolicy.CanAccessReport(actor, rep) {
		apierrors.RenderForbidden(w, r, "You do not have access to this report.")
		return models.Report{}, false
	}
	return rep, true
}

// ServeGet returns a single report.
// GET /reports/{id}  (admin of the lab, or the creating technician)
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.ReportRead)
	if !g.OK {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log)
	defer cancel()

	rep, ok := h.loadReport(ctx, w, r, g.Actor)
	if !ok {
		return
	}

	respond.Data(w, http.StatusOK, rep)
}
