// internal/app/features/reports/edit.go
package reports

import (
	"encoding/json"
	"net/http"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	"github.com/pathlabhq/pathlab/internal/app/policy/lifecycle"
	"github.com/pathlabhq/pathlab/internal/app/policy/rolepolicy"
	"github.com/pathlabhq/pathlab/internal/app/store/audit"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"github.com/pathlabhq/pathlab/internal/domain/models"
)

// HandleUpdate edits report content while the report is still modifiable
// (pending or in-progress). A status field in the body must be a legal
// forward move; completed and later reports reject edits outright.
// PUT /reports/{id}  (the creating technician)
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.ReportUpdate)
	if !g.OK {
		return
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode report body failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log)
	defer cancel()

	rep, ok := h.loadReport(ctx, w, r, g.Actor)
	if !ok {
		return
	}

	if !lifecycle.Modifiable(rep.Status) {
		apierrors.RenderInvalidState(w, r, "Report can no longer be edited in status "+rep.Status+".")
		return
	}
	if req.Status != "" && req.Status != rep.Status {
		if !lifecycle.CanTransition(rep.Status, req.Status) {
			apierrors.RenderInvalidState(w, r, "Cannot move report from "+rep.Status+" to "+req.Status+".")
			return
		}
	} else {
		req.Status = ""
	}

	err := h.Reports.Update(ctx, rep.ID, models.Report{
		PatientInfo: req.PatientInfo,
		TestInfo:    req.TestInfo,
		Results:     req.Results,
		Status:      req.Status,
	}, g.Actor.UserID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update report failed", err, "Unable to update report.")
		return
	}

	updated, err := h.Reports.GetByID(ctx, rep.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch updated report failed", err, "Unable to load report.")
		return
	}

	labID := g.Actor.LabID
	h.Audit.AdminAction(ctx, r, audit.EventReportUpdated, g.Actor.UserID, &labID, nil,
		map[string]string{"report_id": rep.ID.Hex()})
	respond.Data(w, http.StatusOK, updated)
}
