// internal/app/features/reports/create.go
package reports

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	"github.com/pathlabhq/pathlab/internal/app/policy/lifecycle"
	"github.com/pathlabhq/pathlab/internal/app/policy/rolepolicy"
	"github.com/pathlabhq/pathlab/internal/app/store/audit"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"github.com/pathlabhq/pathlab/internal/app/system/txn"
	"github.com/pathlabhq/pathlab/internal/domain/models"
)

// HandleCreate files a new report in the technician's lab. The report
// insert and the lab's denormalized counters move in one transaction.
// POST /reports  (technician)
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.ReportCreate)
	if !g.OK {
		return
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode report body failed", err, "Invalid request body.")
		return
	}

	req.PatientInfo.Name = strings.TrimSpace(req.PatientInfo.Name)
	req.TestInfo.Name = strings.TrimSpace(req.TestInfo.Name)
	if req.PatientInfo.Name == "" || req.PatientInfo.PatientID == "" {
		apierrors.RenderValidation(w, r, "Patient name and patient ID are required.")
		return
	}
	if req.TestInfo.Name == "" {
		apierrors.RenderValidation(w, r, "Test name is required.")
		return
	}
	if req.Status != "" && !lifecycle.Valid(req.Status) {
		apierrors.RenderValidation(w, r, "Unknown report status.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log)
	defer cancel()

	seen, err := h.Reports.ExistsForPatient(ctx, g.Actor.LabID, req.PatientInfo.PatientID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "check patient failed", err, "Unable to create report.")
		return
	}

	var created models.Report
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		var err error
		created, err = h.Reports.Create(ctx, models.Report{
			PatientInfo:  req.PatientInfo,
			TestInfo:     req.TestInfo,
			Results:      req.Results,
			Status:       req.Status,
			LabID:        g.Actor.LabID,
			TechnicianID: g.Actor.UserID,
		})
		if err != nil {
			return err
		}
		return h.Labs.ApplyReportCreated(ctx, g.Actor.LabID, !seen, time.Now().UTC())
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create report failed", err, "Unable to create report.")
		return
	}

	labID := g.Actor.LabID
	h.Audit.AdminAction(ctx, r, audit.EventReportCreated, g.Actor.UserID, &labID, nil,
		map[string]string{"report_id": created.ID.Hex(), "test": created.TestInfo.Name})
	respond.Data(w, http.StatusCreated, created)
}
