// internal/app/features/labs/stats.go
package labs

import (
	"net/http"

	"github.com/pathlabhq/pathlab/internal/app/policy/rolepolicy"
	"github.com/pathlabhq/pathlab/internal/app/store/queries/labstats"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
)

// ServeStats returns the lab's aggregate statistics: reports grouped by
// status, staff grouped by role, and monthly report volume for the last
// twelve months that have data.
// GET /labs/{id}/stats  (super-admin, or admin of that lab)
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.LabStats)
	if !g.OK {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log)
	defer cancel()

	lab, ok := h.loadLab(ctx, w, r, g.Actor)
	if !ok {
		return
	}

	byStatus, err := labstats.ReportsByStatus(ctx, h.DB, lab.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "reports-by-status aggregation failed", err, "Unable to load stats.")
		return
	}
	byRole, err := labstats.UsersByRole(ctx, h.DB, lab.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users-by-role aggregation failed", err, "Unable to load stats.")
		return
	}
	monthly, err := labstats.MonthlyReports(ctx, h.DB, lab.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "monthly-reports aggregation failed", err, "Unable to load stats.")
		return
	}

	totalReports, err := h.Reports.Count(ctx, bson.M{"lab_id": lab.ID})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count reports failed", err, "Unable to load stats.")
		return
	}
	totalUsers, err := h.Users.Count(ctx, bson.M{"lab_id": lab.ID})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count users failed", err, "Unable to load stats.")
		return
	}

	respond.Data(w, http.StatusOK, statsResponse{
		ReportsStats:   byStatus,
		UsersStats:     byRole,
		MonthlyReports: monthly,
		TotalReports:   totalReports,
		TotalUsers:     totalUsers,
	})
}
