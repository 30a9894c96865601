package auth

// Scope is the tenant boundary an identity is confined to for one
// request. Computed once per request from Identity, read-only after.
type Scope struct {
	MerchantID      int64 `json:"merchant_id,omitempty"`
	OutletID        int64 `json:"outlet_id,omitempty"`
	CanAccessSystem bool  `json:"can_access_system"`
}

// ResolveScope derives the scope for an identity. Flat and nested
// merchant/outlet representations are reconciled here, never ad hoc
// downstream.
func ResolveScope(id Identity) Scope {
	return Scope{
		MerchantID:      id.EffectiveMerchantID(),
		OutletID:        id.EffectiveOutletID(),
		CanAccessSystem: id.Role.IsSystemAdmin(),
	}
}

// ValidateScope checks a user scope against a required scope.
// System access always passes. Otherwise checks run merchant-first,
// outlet-second, short-circuiting on the first violation.
func ValidateScope(userScope, requiredScope Scope) *Denial {
	if userScope.CanAccessSystem {
		return nil
	}
	if requiredScope.MerchantID != 0 && requiredScope.MerchantID != userScope.MerchantID {
		return NewDenial(CodeScopeViolation, "cannot access data from other merchants", nil)
	}
	if requiredScope.OutletID != 0 && requiredScope.OutletID != userScope.OutletID {
		return NewDenial(CodeScopeViolation, "cannot access data from other outlets", nil)
	}
	return nil
}

// BuildScopedFilter merges the scope's tenant constraints into a query
// filter. This is the only sanctioned way data-access code may be
// scoped: callers without system access always get their merchant (and
// outlet, when bound) constraint added. The input map is not mutated.
func BuildScopedFilter(scope Scope, extraFilters map[string]any) map[string]any {
	if scope.CanAccessSystem {
		return extraFilters
	}
	filter := make(map[string]any, len(extraFilters)+2)
	for k, v := range extraFilters {
		filter[k] = v
	}
	if scope.MerchantID != 0 {
		filter["merchant_id"] = scope.MerchantID
	}
	if scope.OutletID != 0 {
		filter["outlet_id"] = scope.OutletID
	}
	return filter
}
