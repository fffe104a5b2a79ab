// Package errors renders the failure half of the JSON envelope and hosts
// the ErrorLogger handlers use for logging-plus-response in one call.
//
// Import as apierrors to avoid shadowing the standard library:
//
//	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
package errors

import (
	"net/http"

	"github.com/pathlabhq/pathlab/internal/app/system/respond"
)

// RenderUnauthorized writes a 401. Used when no valid bearer token is
// present.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = "Not authorized to access this route"
	}
	respond.Error(w, http.StatusUnauthorized, msg)
}

// RenderForbidden writes a 403. Used when the actor is authenticated but
// the role or tenant policy denies the operation.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = "Not authorized to perform this action"
	}
	respond.Error(w, http.StatusForbidden, msg)
}

// RenderNotFound writes a 404 for a missing resource.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = "Resource not found"
	}
	respond.Error(w, http.StatusNotFound, msg)
}

// RenderBadRequest writes a 400 for malformed input.
func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = "Invalid request"
	}
	respond.Error(w, http.StatusBadRequest, msg)
}

// RenderValidation writes a 400 for input that parsed but failed
// validation rules.
func RenderValidation(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = "Validation failed"
	}
	respond.Error(w, http.StatusBadRequest, msg)
}

// RenderConflict writes a 409, typically for duplicate unique keys.
func RenderConflict(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = "Resource already exists"
	}
	respond.Error(w, http.StatusConflict, msg)
}

// RenderTooManyRequests writes a 429 when a rate limit trips.
func RenderTooManyRequests(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = "Too many requests"
	}
	respond.Error(w, http.StatusTooManyRequests, msg)
}

// RenderInvalidState writes a 400 for lifecycle violations such as
// editing a verified report or moving a status backward.
func RenderInvalidState(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = "Operation not allowed in the current state"
	}
	respond.Error(w, http.StatusBadRequest, msg)
}
