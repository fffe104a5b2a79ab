// internal/app/features/labs/delete.go
package labs

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pathlabhq/pathlab/internal/app/policy/rolepolicy"
	"github.com/pathlabhq/pathlab/internal/app/store/audit"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"github.com/pathlabhq/pathlab/internal/app/system/txn"
	"go.uber.org/zap"
)

// HandleDelete removes a lab and everything it owns: its users and its
// reports go with it, in one transaction, so no orphaned records survive.
// DELETE /labs/{id}  (super-admin)
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.LabDelete)
	if !g.OK {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log)
	defer cancel()

	lab, ok := h.loadLab(ctx, w, r, g.Actor)
	if !ok {
		return
	}

	var usersGone, reportsGone int64
	err := txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		var err error
		if usersGone, err = h.Users.DeleteByLab(ctx, lab.ID); err != nil {
			return err
		}
		if reportsGone, err = h.Reports.DeleteByLab(ctx, lab.ID); err != nil {
			return err
		}
		_, err = h.Labs.Delete(ctx, lab.ID)
		return err
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete lab cascade failed", err, "Unable to delete lab.")
		return
	}

	h.Log.Info("lab deleted",
		zap.String("lab_id", lab.ID.Hex()),
		zap.Int64("users_removed", usersGone),
		zap.Int64("reports_removed", reportsGone))
	h.Audit.AdminAction(ctx, r, audit.EventLabDeleted, g.Actor.UserID, &lab.ID, nil,
		map[string]string{
			"name":            lab.Name,
			"users_removed":   strconv.FormatInt(usersGone, 10),
			"reports_removed": strconv.FormatInt(reportsGone, 10),
		})
	respond.Message(w, http.StatusOK, "Lab deleted")
}
