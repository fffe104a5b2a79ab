// internal/app/features/labs/view.go
package labs

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

// loadLab parses the {id} URL param, fetches the lab, and enforces the
// tenant boundary. It writes the error response and returns ok=false on
// any failure.
func (h *Handler) loadLab(ctx context.Context, w http.ResponseWriter, r *http.Request, actor authz.Actor) (models.Lab, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.RenderBadRequest(w, r, "Invalid lab ID.")
		return models.Lab{}, false
	}

	lab, err := h.Labs.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		apierrors.RenderNotFound(w, r, "Lab not found.")
		return models.Lab{}, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch lab failed", err, "Unable to load lab.")
		return models.Lab{}, false
	}

	if !tenantpolicy.CanAccessLab(actor, lab.ID) {
		apierrors.RenderForbidden(w, r, "You can only access your own lab.")
		return models.Lab{}, false
	}
	return lab, true
}

// ServeGet returns a single lab.
// GET /labs/{id}  (super-admin, or admin of that lab)
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.LabRead)
	if !g.OK {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log)
	defer cancel()

	lab, ok := h.loadLab(ctx, w, r, g.Actor)
	if !ok {
		return
	}

	respond.Data(w, http.StatusOK, lab)
}
