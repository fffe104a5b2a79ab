// Package tenantpolicy enforces the lab (tenant) isolation boundary.
//
// Every decision runs against the *stored* record's lab, never a lab id
// claimed in a request body, so a technician cannot forge access to another
// tenant by supplying a different lab field.
package tenantpolicy

import (
	"github.com/pathlabhq/pathlab/internal/app/system/authz"
	"github.com/pathlabhq/pathlab/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanAccessLab reports whether the actor may touch records belonging to
// targetLab: super-admins always, everyone else only inside their own lab.
func CanAccessLab(a authz.Actor, targetLab primitive.ObjectID) bool {
	if a.IsSuperAdmin() {
		return true
	}
	return a.LabID == targetLab
}

// CanAccessReport layers the report-specific rule on top of lab isolation:
// an admin passes on lab match alone; a technician additionally must be the
// report's creator. Other roles (including super-admin, which has no lab)
// never access report records.
func CanAccessReport(a authz.Actor, r models.Report) bool {
	switch a.Role {
	case authz.RoleAdmin:
		return a.LabID == r.LabID
	case authz.RoleTechnician:
		return a.LabID == r.LabID && a.UserID == r.TechnicianID
	default:
		return false
	}
}

// RestrictedLabFields are immutable to lab-scoped admins regardless of
// tenant match. They must be stripped from update payloads before
// persistence; only super-admins may change them (subscription through its
// dedicated route).
var RestrictedLabFields = []string{"subscription", "createdBy", "stats"}
