// internal/app/features/labs/create.go
package labs

import (
	"encoding/json"
	"net/http"
	"strings"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	"github.com/pathlabhq/pathlab/internal/app/policy/rolepolicy"
	labstore "github.com/pathlabhq/pathlab/internal/app/store/labs"
	"github.com/pathlabhq/pathlab/internal/app/store/audit"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/htmlsanitize"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"github.com/pathlabhq/pathlab/internal/domain/models"
)

// HandleCreate registers a new lab.
// POST /labs  (super-admin)
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.LabCreate)
	if !g.OK {
		return
	}

	var req labRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode lab body failed", err, "Invalid request body.")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		apierrors.RenderValidation(w, r, "Lab name is required.")
		return
	}
	sanitizeSettings(&req.Settings)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log)
	defer cancel()

	lab, err := h.Labs.Create(ctx, models.Lab{
		Name:      req.Name,
		Address:   req.Address,
		Contact:   req.Contact,
		Settings:  req.Settings,
		CreatedBy: g.Actor.UserID,
	})
	if err != nil {
		if err == labstore.ErrDuplicateLab {
			apierrors.RenderConflict(w, r, "A lab with this name already exists.")
			return
		}
		h.ErrLog.LogServerError(w, r, "create lab failed", err, "Unable to create lab.")
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventLabCreated, g.Actor.UserID, &lab.ID, nil,
		map[string]string{"name": lab.Name})
	respond.Data(w, http.StatusCreated, lab)
}

// sanitizeSettings strips dangerous HTML from the branding fields. Header
// and footer keep limited formatting; everything else becomes plain text.
func sanitizeSettings(s *models.LabSettings) {
	s.ReportHeader = htmlsanitize.Sanitize(s.ReportHeader)
	s.ReportFooter = htmlsanitize.Sanitize(s.ReportFooter)
	s.Logo = htmlsanitize.StripTags(s.Logo)
	s.Theme.PrimaryColor = htmlsanitize.StripTags(s.Theme.PrimaryColor)
	s.Theme.SecondaryColor = htmlsanitize.StripTags(s.Theme.SecondaryColor)
}
