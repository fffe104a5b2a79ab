// internal/app/features/reports/verify.go
package reports

import (
	"net/http"

	"github.com/pathlabhq/pathlab/internal/app/policy/rolepolicy"
	"github.com/pathlabhq/pathlab/internal/app/store/audit"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
)

// HandleVerify marks a report verified and records who signed off.
// Verification is the privileged transition: it acts on any current
// status, and re-verifying overwrites the previous verifier.
// PUT /reports/{id}/verify  (admin of the lab)
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.ReportVerify)
	if !g.OK {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log)
	defer cancel()

	rep, ok := h.loadReport(ctx, w, r, g.Actor)
	if !ok {
		return
	}

	if err := h.Reports.Verify(ctx, rep.ID, g.Actor.UserID); err != nil {
		h.ErrLog.LogServerError(w, r, "verify report failed", err, "Unable to verify report.")
		return
	}

	updated, err := h.Reports.GetByID(ctx, rep.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch verified report failed", err, "Unable to load report.")
		return
	}

	labID := g.Actor.LabID
	h.Audit.AdminAction(ctx, r, audit.EventReportVerified, g.Actor.UserID, &labID, nil,
		map[string]string{"report_id": rep.ID.Hex(), "previous_status": rep.Status})
	respond.Data(w, http.StatusOK, updated)
}
