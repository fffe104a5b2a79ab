// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/pathlabhq/pathlab/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Actor is the resolved identity every policy decision runs against:
// who is acting, with what role, inside which lab. LabID is NilObjectID
// for super-admins (they are not bound to a tenant).
type Actor struct {
	UserID primitive.ObjectID
	Name   string
	Role   string
	LabID  primitive.ObjectID
}

// IsSuperAdmin reports whether the actor operates above the tenant boundary.
func (a Actor) IsSuperAdmin() bool { return a.Role == RoleSuperAdmin }

// ActorCtx resolves the current request's user into an Actor.
// If no user is present or the identifiers are malformed, it returns
// ok=false. Callers can trust that ok=true means a valid, authenticated
// actor with a well-formed user ID; the role is normalized to lowercase.
func ActorCtx(r *http.Request) (Actor, bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return Actor{}, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in token - fail closed.
		return Actor{}, false
	}
	a := Actor{
		UserID: userID,
		Name:   user.Name,
		Role:   strings.ToLower(user.Role),
	}
	if user.LabID != "" {
		labID, err := primitive.ObjectIDFromHex(user.LabID)
		if err != nil {
			return Actor{}, false
		}
		a.LabID = labID
	}
	// Every role except super-admin must be bound to a lab.
	if !a.IsSuperAdmin() && a.LabID == primitive.NilObjectID {
		return Actor{}, false
	}
	return a, true
}

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a
// found flag. Convenience wrapper over ActorCtx for call sites that do not
// need the lab binding.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	a, ok := ActorCtx(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	return a.Role, a.Name, a.UserID, true
}
