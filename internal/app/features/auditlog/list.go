// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"time"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	"github.com/pathlabhq/pathlab/internal/app/store/audit"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/paging"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeList returns audit events, most recent first. Super-admins see the
// whole trail and may narrow with ?labId=; admins see only their own lab.
// GET /audit?page=&limit=&category=&eventType=&startDate=&endDate=&labId=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	p := paging.Parse(r)
	filter := audit.QueryFilter{
		Category:  query.Get(r, "category"),
		EventType: query.Get(r, "eventType"),
		Limit:     p.Limit64(),
		Offset:    p.Skip(),
	}

	if g.Actor.IsSuperAdmin() {
		if s := query.Get(r, "labId"); s != "" {
			labID, err := primitive.ObjectIDFromHex(s)
			if err != nil {
				apierrors.RenderBadRequest(w, r, "Invalid labId.")
				return
			}
			filter.LabID = &labID
		}
	} else {
		labID := g.Actor.LabID
		filter.LabID = &labID
	}

	if s := query.Get(r, "startDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			apierrors.RenderValidation(w, r, "startDate must be YYYY-MM-DD.")
			return
		}
		filter.StartTime = &t
	}
	if s := query.Get(r, "endDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			apierrors.RenderValidation(w, r, "endDate must be YYYY-MM-DD.")
			return
		}
		endOfDay := t.Add(24*time.Hour - time.Second)
		filter.EndTime = &endOfDay
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log)
	defer cancel()

	total, err := h.Events.CountByFilter(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count audit events failed", err, "Unable to list audit events.")
		return
	}

	events, err := h.Events.Query(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "query audit events failed", err, "Unable to list audit events.")
		return
	}

	items := make([]listItem, 0, len(events))
	for _, e := range events {
		item := listItem{
			ID:            e.ID.Hex(),
			Timestamp:     e.Timestamp,
			Category:      e.Category,
			EventType:     e.EventType,
			IP:            e.IP,
			Success:       e.Success,
			FailureReason: e.FailureReason,
			Details:       e.Details,
		}
		if e.LabID != nil {
			item.LabID = e.LabID.Hex()
		}
		if e.ActorID != nil {
			item.ActorID = e.ActorID.Hex()
		}
		if e.UserID != nil {
			item.UserID = e.UserID.Hex()
		}
		items = append(items, item)
	}

	respond.List(w, http.StatusOK, items, len(items), paging.Build(p, total))
}
