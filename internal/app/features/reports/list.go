// internal/app/features/reports/list.go
package reports

import (
	"net/http"
	"time"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	"github.com/pathlabhq/pathlab/internal/app/policy/lifecycle"
	"github.com/pathlabhq/pathlab/internal/app/policy/rolepolicy"
	reportstore "github.com/pathlabhq/pathlab/internal/app/store/reports"
	"github.com/pathlabhq/pathlab/internal/app/system/authz"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/paging"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// parseDate accepts RFC3339 or a plain calendar date.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// listFilter builds the store filter for the actor: admins see the whole
// lab, technicians only their own reports.
func listFilter(r *http.Request, actor authz.Actor) (reportstore.Filter, string) {
	labID := actor.LabID
	f := reportstore.Filter{LabID: &labID}
	if actor.Role == authz.RoleTechnician {
		techID := actor.UserID
		f.TechnicianID = &techID
	}

	if s := query.Get(r, "status"); s != "" {
		if !lifecycle.Valid(s) {
			return f, "Unknown report status."
		}
		f.Status = s
	}
	f.PatientID = query.Get(r, "patientId")
	f.TestName = query.Get(r, "testName")

	if s := query.Get(r, "startDate"); s != "" {
		t, ok := parseDate(s)
		if !ok {
			return f, "Invalid startDate."
		}
		f.StartDate = &t
	}
	if s := query.Get(r, "endDate"); s != "" {
		t, ok := parseDate(s)
		if !ok {
			return f, "Invalid endDate."
		}
		f.EndDate = &t
	}
	return f, ""
}

// ServeList lists reports in the actor's lab, newest first.
// GET /reports?page=&limit=&status=&patientId=&testName=&startDate=&endDate=
// (admin sees the lab; technician sees own)
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.ReportList)
	if !g.OK {
		return
	}

	f, problem := listFilter(r, g.Actor)
	if problem != "" {
		apierrors.RenderValidation(w, r, problem)
		return
	}
	p := paging.Parse(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log)
	defer cancel()

	total, err := h.Reports.Count(ctx, f.Query())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count reports failed", err, "Unable to list reports.")
		return
	}

	rows, err := h.Reports.Find(ctx, f.Query(), options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit64()))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "find reports failed", err, "Unable to list reports.")
		return
	}

	respond.List(w, http.StatusOK, rows, len(rows), paging.Build(p, total))
}
