// internal/app/features/labs/list.go
package labs

import (
	"net/http"

	"github.com/pathlabhq/pathlab/internal/app/policy/rolepolicy"
	"github.com/pathlabhq/pathlab/internal/app/system/gates"
	"github.com/pathlabhq/pathlab/internal/app/system/paging"
	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"github.com/pathlabhq/pathlab/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServeList lists all labs, optionally filtered by a name prefix.
// GET /labs?page=&limit=&search=  (super-admin)
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAction(w, r, rolepolicy.LabList)
	if !g.OK {
		return
	}

	p := paging.Parse(r)
	filter := bson.M{}
	if search := query.Get(r, "search"); search != "" {
		filter["name_ci"] = bson.M{"$regex": "^" + text.Fold(search)}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log)
	defer cancel()

	total, err := h.Labs.Count(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count labs failed", err, "Unable to list labs.")
		return
	}

	labs, err := h.Labs.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit64()))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "find labs failed", err, "Unable to list labs.")
		return
	}

	respond.List(w, http.StatusOK, labs, len(labs), paging.Build(p, total))
}
