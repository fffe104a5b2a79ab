// internal/app/system/authz/roles.go
package authz

// Role names are stored lowercased and compared lowercased everywhere.
const (
	RoleSuperAdmin   = "super-admin"
	RoleAdmin        = "admin"
	RoleTechnician   = "technician"
	RoleReceptionist = "receptionist"
)

// AllRoles enumerates every valid role value.
var AllRoles = []string{RoleSuperAdmin, RoleAdmin, RoleTechnician, RoleReceptionist}

// ValidRole reports whether role is one of the enumerated values.
func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if role == r {
			return true
		}
	}
	return false
}
