package auth

import (
	"reflect"
	"testing"
)

func TestResolveScopeFromFlatFields(t *testing.T) {
	scope := ResolveScope(Identity{ID: 1, Role: RoleOutletStaff, MerchantID: 7, OutletID: 3})
	if scope.CanAccessSystem {
		t.Fatalf("staff must not have system access")
	}
	if scope.MerchantID != 7 || scope.OutletID != 3 {
		t.Fatalf("unexpected scope: %+v", scope)
	}
}

func TestResolveScopeFallsBackToNestedRefs(t *testing.T) {
	scope := ResolveScope(Identity{
		ID:       1,
		Role:     RoleOutletAdmin,
		Merchant: &MerchantRef{ID: 7, Name: "Bike Hub"},
		Outlet:   &OutletRef{ID: 3},
	})
	if scope.MerchantID != 7 || scope.OutletID != 3 {
		t.Fatalf("nested refs were not reconciled: %+v", scope)
	}
}

func TestResolveScopeFlatFieldWins(t *testing.T) {
	scope := ResolveScope(Identity{
		ID:         1,
		Role:       RoleMerchantOwner,
		MerchantID: 7,
		Merchant:   &MerchantRef{ID: 99},
	})
	if scope.MerchantID != 7 {
		t.Fatalf("flat merchant id must win, got %d", scope.MerchantID)
	}
}

func TestResolveScopeSystemAdmin(t *testing.T) {
	scope := ResolveScope(Identity{ID: 1, Role: RoleSystemAdmin})
	if !scope.CanAccessSystem {
		t.Fatalf("system admin must have system access")
	}
}

func TestValidateScopeSystemAccessBypasses(t *testing.T) {
	user := Scope{CanAccessSystem: true}
	if denial := ValidateScope(user, Scope{MerchantID: 9, OutletID: 5}); denial != nil {
		t.Fatalf("system access must bypass scope checks: %v", denial)
	}
}

func TestValidateScopeMerchantFirst(t *testing.T) {
	user := Scope{MerchantID: 7, OutletID: 3}
	// Both merchant and outlet differ; merchant violation must win.
	denial := ValidateScope(user, Scope{MerchantID: 9, OutletID: 5})
	if denial == nil {
		t.Fatalf("expected scope violation")
	}
	if denial.Code != CodeScopeViolation {
		t.Fatalf("unexpected code: %s", denial.Code)
	}
	if denial.Message != "cannot access data from other merchants" {
		t.Fatalf("merchant check must run first, got %q", denial.Message)
	}
}

func TestValidateScopeOutletSecond(t *testing.T) {
	user := Scope{MerchantID: 7, OutletID: 3}
	denial := ValidateScope(user, Scope{MerchantID: 7, OutletID: 5})
	if denial == nil || denial.Message != "cannot access data from other outlets" {
		t.Fatalf("expected outlet violation, got %v", denial)
	}
}

func TestValidateScopeIsPure(t *testing.T) {
	user := Scope{MerchantID: 7}
	required := Scope{MerchantID: 9}
	first := ValidateScope(user, required)
	second := ValidateScope(user, required)
	if first == nil || second == nil {
		t.Fatalf("expected violations")
	}
	if first.Code != second.Code || first.Message != second.Message {
		t.Fatalf("repeated calls diverged: %v vs %v", first, second)
	}
}

func TestBuildScopedFilterSystemAccessPassthrough(t *testing.T) {
	extra := map[string]any{"status": "ACTIVE"}
	got := BuildScopedFilter(Scope{CanAccessSystem: true, MerchantID: 7}, extra)
	if !reflect.DeepEqual(got, extra) {
		t.Fatalf("system scope must return filters unchanged: %v", got)
	}
}

func TestBuildScopedFilterAddsTenantConstraints(t *testing.T) {
	scope := Scope{MerchantID: 7, OutletID: 3}
	got := BuildScopedFilter(scope, map[string]any{"status": "ACTIVE"})
	want := map[string]any{"status": "ACTIVE", "merchant_id": int64(7), "outlet_id": int64(3)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected filter: %v", got)
	}
}

func TestBuildScopedFilterDoesNotMutateInput(t *testing.T) {
	extra := map[string]any{"status": "ACTIVE"}
	_ = BuildScopedFilter(Scope{MerchantID: 7}, extra)
	if len(extra) != 1 {
		t.Fatalf("input filter was mutated: %v", extra)
	}
}

func TestBuildScopedFilterAlwaysCarriesMerchant(t *testing.T) {
	scope := Scope{MerchantID: 7}
	for _, extra := range []map[string]any{nil, {}, {"status": "RESERVED"}} {
		got := BuildScopedFilter(scope, extra)
		if got["merchant_id"] != int64(7) {
			t.Fatalf("merchant constraint missing from %v", got)
		}
	}
}
