package auth

import (
	"sort"
	"strings"
)

// Permission keys are dot-qualified "<resource>.<action>" strings.
const (
	PermOrdersView      = "orders.view"
	PermOrdersCreate    = "orders.create"
	PermOrdersUpdate    = "orders.update"
	PermOrdersDelete    = "orders.delete"
	PermOrdersExport    = "orders.export"
	PermProductsView    = "products.view"
	PermProductsCreate  = "products.create"
	PermProductsUpdate  = "products.update"
	PermProductsDelete  = "products.delete"
	PermProductsExport  = "products.export"
	PermCustomersView   = "customers.view"
	PermCustomersCreate = "customers.create"
	PermCustomersUpdate = "customers.update"
	PermCustomersExport = "customers.export"
	PermUsersManage     = "users.manage"
	PermOutletsManage   = "outlets.manage"
	PermReportsView     = "reports.view"
	PermSettingsManage  = "settings.manage"
	PermBillingManage   = "billing.manage"
	PermMerchantsManage = "merchants.manage"
	PermSystemAccess    = "system.access"
)

// Matrix maps each role to its permission set. It is built once at
// process start and never mutated afterwards.
type Matrix map[Role]map[string]struct{}

// outletStaffPermissions is the base row. Every other row is a strict
// superset of the row below it; export permissions and orders.delete
// are withheld from staff and granted starting at OUTLET_ADMIN.
var outletStaffPermissions = []string{
	PermOrdersView,
	PermOrdersCreate,
	PermOrdersUpdate,
	PermProductsView,
	PermCustomersView,
	PermCustomersCreate,
	PermCustomersUpdate,
}

var outletAdminExtra = []string{
	PermOrdersDelete,
	PermOrdersExport,
	PermProductsExport,
	PermCustomersExport,
	PermProductsCreate,
	PermProductsUpdate,
	PermUsersManage,
	PermReportsView,
}

var merchantOwnerExtra = []string{
	PermProductsDelete,
	PermOutletsManage,
	PermSettingsManage,
	PermBillingManage,
}

var systemAdminExtra = []string{
	PermMerchantsManage,
	PermSystemAccess,
}

// NewMatrix builds the static role-permission table. Rows are
// constructed additively so the superset chain
// SYSTEM_ADMIN > MERCHANT_OWNER > OUTLET_ADMIN > OUTLET_STAFF holds by
// construction.
func NewMatrix() Matrix {
	staff := permissionSet(outletStaffPermissions)
	admin := union(staff, permissionSet(outletAdminExtra))
	owner := union(admin, permissionSet(merchantOwnerExtra))
	system := union(owner, permissionSet(systemAdminExtra))
	return Matrix{
		RoleOutletStaff:   staff,
		RoleOutletAdmin:   admin,
		RoleMerchantOwner: owner,
		RoleSystemAdmin:   system,
	}
}

// HasPermission reports whether the identity's role holds the
// permission. Unknown roles have no row and are always denied.
func (m Matrix) HasPermission(id Identity, permission string) bool {
	row, ok := m[id.Role]
	if !ok {
		return false
	}
	_, ok = row[permission]
	return ok
}

// HasAnyPermission reports whether at least one permission is held.
func (m Matrix) HasAnyPermission(id Identity, permissions ...string) bool {
	for _, p := range permissions {
		if m.HasPermission(id, p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether every listed permission is held.
// An empty list is vacuously true.
func (m Matrix) HasAllPermissions(id Identity, permissions ...string) bool {
	for _, p := range permissions {
		if !m.HasPermission(id, p) {
			return false
		}
	}
	return true
}

// CanAccessResource is sugar for HasPermission(resource + "." + action).
// An empty action defaults to "view".
func (m Matrix) CanAccessResource(id Identity, resource, action string) bool {
	action = strings.TrimSpace(action)
	if action == "" {
		action = "view"
	}
	return m.HasPermission(id, resource+"."+action)
}

// Permissions returns a sorted copy of a role's row, for introspection.
// The matrix itself is never exposed mutably.
func (m Matrix) Permissions(role Role) []string {
	row, ok := m[role]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(row))
	for k := range row {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func permissionSet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func union(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}
