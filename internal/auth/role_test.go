package auth

import "testing"

func TestParseRoleNormalizesKnownRoles(t *testing.T) {
	cases := map[string]Role{
		"SYSTEM_ADMIN":   RoleSystemAdmin,
		"merchant_owner": RoleMerchantOwner,
		" Outlet_Admin ": RoleOutletAdmin,
		"outlet_staff":   RoleOutletStaff,
	}
	for raw, want := range cases {
		if got := ParseRole(raw); got != want {
			t.Fatalf("ParseRole(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestParseRoleFailsClosed(t *testing.T) {
	for _, raw := range []string{"", "superuser", "admin", "MERCHANT", "owner"} {
		role := ParseRole(raw)
		if role != RoleNone {
			t.Fatalf("ParseRole(%q) = %v, want RoleNone", raw, role)
		}
		if role.Valid() {
			t.Fatalf("RoleNone must not be valid")
		}
	}
}

func TestRolePredicatesFailClosedForNoRole(t *testing.T) {
	none := RoleNone
	if none.IsSystemAdmin() || none.IsMerchantLevel() || none.IsOutletTeam() ||
		none.CanManageUsers() || none.CanManageOutlets() {
		t.Fatalf("every predicate must be false for RoleNone")
	}
}

func TestRoleGroupPredicates(t *testing.T) {
	if !RoleSystemAdmin.IsMerchantLevel() || !RoleMerchantOwner.IsMerchantLevel() {
		t.Fatalf("system admin and merchant owner are merchant-level")
	}
	if RoleOutletAdmin.IsMerchantLevel() || RoleOutletStaff.IsMerchantLevel() {
		t.Fatalf("outlet roles are not merchant-level")
	}
	if !RoleOutletAdmin.IsOutletTeam() || !RoleOutletStaff.IsOutletTeam() {
		t.Fatalf("outlet roles form the outlet team")
	}
	if RoleSystemAdmin.IsOutletTeam() {
		t.Fatalf("system admin is not outlet team")
	}
	if !RoleOutletAdmin.CanManageUsers() || RoleOutletStaff.CanManageUsers() {
		t.Fatalf("user management stops at outlet admin")
	}
	if !RoleMerchantOwner.CanManageOutlets() || RoleOutletAdmin.CanManageOutlets() {
		t.Fatalf("outlet management stops at merchant owner")
	}
}

func TestRoleStringRoundTrip(t *testing.T) {
	for _, role := range []Role{RoleSystemAdmin, RoleMerchantOwner, RoleOutletAdmin, RoleOutletStaff} {
		if got := ParseRole(role.String()); got != role {
			t.Fatalf("round trip for %v yielded %v", role, got)
		}
	}
}
