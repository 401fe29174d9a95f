package constants

import "fmt"

const (
	RoleAdmin       = "admin"
	RoleCoordinator = "coordinator"
	RoleStaff       = "staff"
)

// Role error messages
const (
	ErrOnlyAdminsCanAccess       = "Only admins can access %s."
	ErrOnlyCoordinatorsCanAccess = "Only coordinators or admins can access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorCoordinator(feature string) string {
	return fmt.Sprintf(ErrOnlyCoordinatorsCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleCoordinator,
		RoleStaff,
	}

	CoordinatorAndAbove = []string{
		RoleCoordinator,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
