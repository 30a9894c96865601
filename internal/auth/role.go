package auth

import "strings"

// Role is the closed set of staff roles. The zero value is RoleNone,
// which fails every permission and predicate check.
type Role int

const (
	RoleNone Role = iota
	RoleSystemAdmin
	RoleMerchantOwner
	RoleOutletAdmin
	RoleOutletStaff
)

const (
	roleSystemAdmin   = "SYSTEM_ADMIN"
	roleMerchantOwner = "MERCHANT_OWNER"
	roleOutletAdmin   = "OUTLET_ADMIN"
	roleOutletStaff   = "OUTLET_STAFF"
)

// ParseRole maps a stored role string onto the enum. Unrecognized or
// empty strings normalize to RoleNone.
func ParseRole(raw string) Role {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case roleSystemAdmin:
		return RoleSystemAdmin
	case roleMerchantOwner:
		return RoleMerchantOwner
	case roleOutletAdmin:
		return RoleOutletAdmin
	case roleOutletStaff:
		return RoleOutletStaff
	default:
		return RoleNone
	}
}

func (r Role) String() string {
	switch r {
	case RoleSystemAdmin:
		return roleSystemAdmin
	case RoleMerchantOwner:
		return roleMerchantOwner
	case RoleOutletAdmin:
		return roleOutletAdmin
	case RoleOutletStaff:
		return roleOutletStaff
	default:
		return ""
	}
}

// Valid reports whether r is one of the four real roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystemAdmin, RoleMerchantOwner, RoleOutletAdmin, RoleOutletStaff:
		return true
	default:
		return false
	}
}

// IsSystemAdmin reports whether r carries unrestricted system access.
func (r Role) IsSystemAdmin() bool {
	return r == RoleSystemAdmin
}

// IsMerchantLevel reports whether r operates at merchant scope or above.
func (r Role) IsMerchantLevel() bool {
	switch r {
	case RoleSystemAdmin, RoleMerchantOwner:
		return true
	default:
		return false
	}
}

// IsOutletTeam reports whether r belongs to an outlet's day-to-day staff.
func (r Role) IsOutletTeam() bool {
	switch r {
	case RoleOutletAdmin, RoleOutletStaff:
		return true
	default:
		return false
	}
}

// CanManageUsers reports whether r may administer staff accounts.
func (r Role) CanManageUsers() bool {
	switch r {
	case RoleSystemAdmin, RoleMerchantOwner, RoleOutletAdmin:
		return true
	default:
		return false
	}
}

// CanManageOutlets reports whether r may create or reconfigure outlets.
func (r Role) CanManageOutlets() bool {
	switch r {
	case RoleSystemAdmin, RoleMerchantOwner:
		return true
	default:
		return false
	}
}
