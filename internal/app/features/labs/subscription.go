// internal/app/features/labs/subscription.go
package labs

import (
	"encoding/json"
	"net/http"
	"time"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	"github.com/pathlabhq/pathlab/internal/app/policy/rolepolicy"
	labstore "github.com/pathlabhq/pathlab/internal/app/store/labs"
	"github.com/pathlabhq/pathlab/internal/app/store/audit"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"github.com/pathlabhq/pathlab/internal/domain/models"
)

func validPlan(p string) bool {
	return p == labstore.PlanBasic || p == labstore.PlanPremium || p == labstore.PlanEnterprise
}

func validSubStatus(s string) bool {
	return s == labstore.SubActive || s == labstore.SubInactive || s == labstore.SubSuspended
}

// HandleSubscription replaces a lab's subscription.
// PUT /labs/{id}/subscription  (super-admin)
func (h *Handler) HandleSubscription(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.LabSubscription)
	if !g.OK {
		return
	}

	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode subscription body failed", err, "Invalid request body.")
		return
	}
	if !validPlan(req.Plan) {
		apierrors.RenderValidation(w, r, "Plan must be basic, premium, or enterprise.")
		return
	}
	if !validSubStatus(req.Status) {
		apierrors.RenderValidation(w, r, "Status must be active, inactive, or suspended.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log)
	defer cancel()

	lab, ok := h.loadLab(ctx, w, r, g.Actor)
	if !ok {
		return
	}

	sub := models.Subscription{
		Plan:      req.Plan,
		Status:    req.Status,
		StartDate: lab.Subscription.StartDate,
		EndDate:   req.EndDate,
	}
	if req.StartDate != nil {
		sub.StartDate = *req.StartDate
	}
	if sub.StartDate.IsZero() {
		sub.StartDate = time.Now().UTC()
	}

	if err := h.Labs.UpdateSubscription(ctx, lab.ID, sub); err != nil {
		h.ErrLog.LogServerError(w, r, "update subscription failed", err, "Unable to update subscription.")
		return
	}

	updated, err := h.Labs.GetByID(ctx, lab.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch updated lab failed", err, "Unable to load lab.")
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventSubscriptionUpdated, g.Actor.UserID, &lab.ID, nil,
		map[string]string{"plan": sub.Plan, "status": sub.Status})
	respond.Data(w, http.StatusOK, updated)
}
