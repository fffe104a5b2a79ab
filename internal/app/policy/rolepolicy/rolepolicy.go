// Package rolepolicy provides the static role-capability table.
//
// Authorization rules:
//   - Super-admins manage labs and subscriptions but never touch report data
//   - Admins run their own lab: read/update it, verify and delete reports
//   - Technicians create and edit their own reports
//   - Receptionists have no write capabilities in this surface
//
// CanPerform answers only "may this role ever do this action"; whether the
// actor may do it to a *specific* record is the tenant policy's job.
package rolepolicy

import "github.com/pathlabhq/pathlab/internal/app/system/authz"

// Action identifies one guarded operation.
type Action string

const (
	LabCreate       Action = "lab:create"
	LabList         Action = "lab:list"
	LabRead         Action = "lab:read"
	LabUpdate       Action = "lab:update"
	LabDelete       Action = "lab:delete"
	LabStats        Action = "lab:stats"
	LabSubscription Action = "lab:subscription"

	ReportCreate  Action = "report:create"
	ReportList    Action = "report:list"
	ReportRead    Action = "report:read"
	ReportUpdate  Action = "report:update"
	ReportVerify  Action = "report:verify"
	ReportDelete  Action = "report:delete"
	ReportComment Action = "report:comment"

	UserManage Action = "user:manage"
)

// capabilities maps each action to the set of roles allowed to attempt it.
var capabilities = map[Action]map[string]bool{
	LabCreate:       {authz.RoleSuperAdmin: true},
	LabList:         {authz.RoleSuperAdmin: true},
	LabRead:         {authz.RoleSuperAdmin: true, authz.RoleAdmin: true},
	LabUpdate:       {authz.RoleSuperAdmin: true, authz.RoleAdmin: true},
	LabDelete:       {authz.RoleSuperAdmin: true},
	LabStats:        {authz.RoleSuperAdmin: true, authz.RoleAdmin: true},
	LabSubscription: {authz.RoleSuperAdmin: true},

	ReportCreate:  {authz.RoleTechnician: true},
	ReportList:    {authz.RoleAdmin: true, authz.RoleTechnician: true},
	ReportRead:    {authz.RoleAdmin: true, authz.RoleTechnician: true},
	ReportUpdate:  {authz.RoleTechnician: true},
	ReportVerify:  {authz.RoleAdmin: true},
	ReportDelete:  {authz.RoleAdmin: true},
	ReportComment: {authz.RoleAdmin: true, authz.RoleTechnician: true},

	UserManage: {authz.RoleSuperAdmin: true, authz.RoleAdmin: true},
}

// CanPerform reports whether the role may perform the action at all.
// Unknown roles and unknown actions are denied.
func CanPerform(role string, action Action) bool {
	allowed, ok := capabilities[action]
	if !ok {
		return false
	}
	return allowed[role]
}
