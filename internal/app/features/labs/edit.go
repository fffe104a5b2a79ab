// internal/app/features/labs/edit.go
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
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"github.com/pathlabhq/pathlab/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// HandleUpdate edits a lab's profile and branding. The request type has
// no subscription, stats, or creator fields, so a lab admin cannot smuggle
// them in; the subscription moves only through its own super-admin route.
// PUT /labs/{id}  (super-admin, or admin of that lab)
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.LabUpdate)
	if !g.OK {
		return
	}

	var req labRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode lab body failed", err, "Invalid request body.")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	sanitizeSettings(&req.Settings)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log)
	defer cancel()

	lab, ok := h.loadLab(ctx, w, r, g.Actor)
	if !ok {
		return
	}

	if req.Name != "" && text.Fold(req.Name) != lab.NameCI {
		taken, err := h.Labs.NameExistsForOther(ctx, text.Fold(req.Name), lab.ID)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "check lab name failed", err, "Unable to update lab.")
			return
		}
		if taken {
			apierrors.RenderConflict(w, r, "A lab with this name already exists.")
			return
		}
	}

	err := h.Labs.Update(ctx, lab.ID, models.Lab{
		Name:     req.Name,
		Address:  req.Address,
		Contact:  req.Contact,
		Settings: req.Settings,
	})
	if err != nil {
		if err == labstore.ErrDuplicateLab {
			apierrors.RenderConflict(w, r, "A lab with this name already exists.")
			return
		}
		h.ErrLog.LogServerError(w, r, "update lab failed", err, "Unable to update lab.")
		return
	}

	updated, err := h.Labs.GetByID(ctx, lab.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch updated lab failed", err, "Unable to load lab.")
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventLabUpdated, g.Actor.UserID, &lab.ID, nil, nil)
	respond.Data(w, http.StatusOK, updated)
}
