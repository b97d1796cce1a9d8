package entity

import "github.com/google/uuid"

// Actor is the resolved identity of the authenticated caller. It is built
// once by the auth middleware and passed explicitly into every service
// call; nothing in the core reads identity from ambient state.
type Actor struct {
	ID           uuid.UUID
	Name         string
	Role         string
	UniversityID *string
}

func (a Actor) IsSuperadmin() bool {
	return a.Role == RoleSuperadmin
}

// CanAccessTenant reports whether the actor may touch data belonging to the
// given university. Superadmins span all tenants; admins and alumni are
// confined to their own. Self-service routes check resource ownership
// separately and do not go through this predicate.
func (a Actor) CanAccessTenant(universityID string) bool {
	if a.Role == RoleSuperadmin {
		return true
	}
	return a.UniversityID != nil && *a.UniversityID == universityID
}

// SameTenant reports whether another user shares the actor's tenant.
func (a Actor) SameTenant(other *User) bool {
	if a.UniversityID == nil || other.UniversityID == nil {
		return false
	}
	return *a.UniversityID == *other.UniversityID
}
