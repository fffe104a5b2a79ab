// Package gates provides authorization gate functions for HTTP handlers.
// Gates check authentication and role capability, writing the error
// response when a check fails.
//
// # Three-Tier Authorization Pattern
//
//  1. Route-Level Middleware (auth.RequireSignedIn, auth.RequireRole)
//     Applied in routes.go files for coarse-grained access control.
//     When middleware handles role checking, handlers don't need gates.
//
//  2. Handler-Level Gates (this package)
//     Used in handlers that need a capability check without route-level
//     middleware, or a different requirement than the route group.
//     Gates write the error response and return the resolved actor.
//
//  3. Policy Layer (internal/app/policy/*)
//     Used for record-specific authorization against the stored document:
//     tenantpolicy for lab isolation, lifecycle for status transitions.
//     Policies return plain booleans; callers handle error rendering.
//
// Don't use gates in handlers behind role-specific middleware; use
// authz.ActorCtx(r) there to read the actor without re-checking.
package gates

import (
	"net/http"

	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	"github.com/pathlabhq/pathlab/internal/app/policy/rolepolicy"
	"github.com/pathlabhq/pathlab/internal/app/system/authz"
)

// Result contains the outcome of a gate check.
type Result struct {
	Actor authz.Actor
	OK    bool
}

// RequireAuth ensures a user is authenticated. On failure it writes a 401
// and returns OK=false.
func RequireAuth(w http.ResponseWriter, r *http.Request) Result {
	a, ok := authz.ActorCtx(r)
	if !ok {
		apierrors.RenderUnauthorized(w, r, "")
		return Result{OK: false}
	}
	return Result{Actor: a, OK: true}
}

// RequireAction ensures the user is authenticated and their role carries
// the capability for action. Writes 401 or 403 on failure. Record-level
// checks (tenant, ownership, lifecycle) remain the handler's job.
func RequireAction(w http.ResponseWriter, r *http.Request, action rolepolicy.Action) Result {
	a, ok := authz.ActorCtx(r)
	if !ok {
		apierrors.RenderUnauthorized(w, r, "")
		return Result{OK: false}
	}
	if !rolepolicy.CanPerform(a.Role, action) {
		apierrors.RenderForbidden(w, r, "Your role is not permitted to perform this action")
		return Result{OK: false}
	}
	return Result{Actor: a, OK: true}
}
