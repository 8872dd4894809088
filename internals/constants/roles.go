package constants

import "fmt"

const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleZoneAdmin  = "ZONE_ADMIN"
	RoleUser       = "USER"
)

// Role error templates
const (
	ErrOnlySuperAdminCanAccess = "❌ Only super admins may access %s."
	ErrOnlyAdminsCanAccess     = "❌ Only super admins or zone admins may access %s."
	ErrOutsideZone             = "❌ %s belongs to another zone."
)

func RoleErrorSuperAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlySuperAdminCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func ZoneError(resource string) string {
	return fmt.Sprintf(ErrOutsideZone, resource)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleSuperAdmin,
		RoleZoneAdmin,
		RoleUser,
	}

	AdminRoles = []string{
		RoleSuperAdmin,
		RoleZoneAdmin,
	}

	SuperAdminOnly = []string{
		RoleSuperAdmin,
	}
)

func IsValidRole(r string) bool {
	for _, x := range AllRoles {
		if x == r {
			return true
		}
	}
	return false
}
