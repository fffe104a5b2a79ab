// internal/app/features/users/list.go
package users

import (
	"net/http"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	"github.com/pathlabhq/pathlab/internal/app/policy/rolepolicy"
	"github.com/pathlabhq/pathlab/internal/app/system/authz"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/paging"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServeList lists staff. Admins see their own lab; super-admins see all
// users, optionally narrowed with ?labId=.
// GET /users?page=&limit=&role=&status=&labId=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.UserManage)
	if !g.OK {
		return
	}

	filter := bson.M{}
	if g.Actor.IsSuperAdmin() {
		if s := query.Get(r, "labId"); s != "" {
			labID, err := primitive.ObjectIDFromHex(s)
			if err != nil {
				apierrors.RenderBadRequest(w, r, "Invalid labId.")
				return
			}
			filter["lab_id"] = labID
		}
	} else {
		filter["lab_id"] = g.Actor.LabID
	}

	if role := query.Get(r, "role"); role != "" {
		if !authz.ValidRole(role) {
			apierrors.RenderValidation(w, r, "Unknown role.")
			return
		}
		filter["role"] = role
	}
	if status := query.Get(r, "status"); status != "" {
		filter["status"] = status
	}

	p := paging.Parse(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log)
	defer cancel()

	total, err := h.Users.Count(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count users failed", err, "Unable to list users.")
		return
	}

	rows, err := h.Users.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit64()))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "find users failed", err, "Unable to list users.")
		return
	}

	respond.List(w, http.StatusOK, rows, len(rows), paging.Build(p, total))
}
