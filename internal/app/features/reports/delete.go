// internal/app/features/reports/delete.go
package reports

import (
	"context"
	"net/http"

	"github.com/pathlabhq/pathlab/internal/app/policy/rolepolicy"
	"github.com/pathlabhq/pathlab/internal/app/store/audit"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"github.com/pathlabhq/pathlab/internal/app/system/txn"
)

// HandleDelete removes a report and walks the lab's report counter back,
// in one transaction.
// DELETE /reports/{id}  (admin of the lab)
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.ReportDelete)
	if !g.OK {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log)
	defer cancel()

	rep, ok := h.loadReport(ctx, w, r, g.Actor)
	if !ok {
		return
	}

	err := txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if _, err := h.Reports.Delete(ctx, rep.ID); err != nil {
			return err
		}
		return h.Labs.ApplyReportDeleted(ctx, rep.LabID)
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete report failed", err, "Unable to delete report.")
		return
	}

	labID := g.Actor.LabID
	h.Audit.AdminAction(ctx, r, audit.EventReportDeleted, g.Actor.UserID, &labID, nil,
		map[string]string{"report_id": rep.ID.Hex(), "status": rep.Status})
	respond.Message(w, http.StatusOK, "Report deleted")
}
