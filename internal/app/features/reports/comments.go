// internal/app/features/reports/comments.go
package reports

import (
	"encoding/json"
	"net/http"
	"strings"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	"github.com/pathlabhq/pathlab/internal/app/policy/rolepolicy"
	"github.com/pathlabhq/pathlab/internal/app/store/audit"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/htmlsanitize"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"github.com/pathlabhq/pathlab/internal/domain/models"
)

// HandleAddComment appends a comment to a report. Comments are plain
// text, append-only, and allowed in any status, verified included.
// POST /reports/{id}/comments  (admin of the lab, or the creating technician)
func (h *Handler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.ReportComment)
	if !g.OK {
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode comment body failed", err, "Invalid request body.")
		return
	}
	req.Text = strings.TrimSpace(htmlsanitize.StripTags(req.Text))
	if req.Text == "" {
		apierrors.RenderValidation(w, r, "Comment text is required.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log)
	defer cancel()

	rep, ok := h.loadReport(ctx, w, r, g.Actor)
	if !ok {
		return
	}

	if err := h.Reports.AddComment(ctx, rep.ID, models.Comment{
		UserID: g.Actor.UserID,
		Text:   req.Text,
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "add comment failed", err, "Unable to add comment.")
		return
	}

	updated, err := h.Reports.GetByID(ctx, rep.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch commented report failed", err, "Unable to load report.")
		return
	}

	labID := g.Actor.LabID
	h.Audit.AdminAction(ctx, r, audit.EventCommentAdded, g.Actor.UserID, &labID, nil,
		map[string]string{"report_id": rep.ID.Hex()})
	respond.Data(w, http.StatusOK, updated)
}
