package auth

import "fmt"

// ResourceAction names a resource/action pair; the action defaults to
// "view" when empty.
type ResourceAction struct {
	Resource string
	Action   string
}

// Requirement declares what a pipeline demands before the inner
// handler runs. The zero value requires only a verified credential and
// an active subscription.
type Requirement struct {
	// Permission, when set, must be held by the identity's role.
	Permission string
	// ResourceAction, when set, must be accessible to the role.
	ResourceAction *ResourceAction
	// Scope, when set, is validated against the identity's scope.
	Scope *Scope
	// SkipSubscriptionCheck inverts the default-on subscription gate so
	// the zero Requirement keeps the safe default.
	SkipSubscriptionCheck bool
}

// RequirePermission is the named-pipeline constructor for a single
// permission.
func RequirePermission(permission string) Requirement {
	return Requirement{Permission: permission}
}

// RequireResource is the named-pipeline constructor for a
// resource/action pair.
func RequireResource(resource, action string) Requirement {
	return Requirement{ResourceAction: &ResourceAction{Resource: resource, Action: action}}
}

// Result is the outcome of an authorization evaluation.
type Result struct {
	Authorized bool
	Scope      Scope
	Failure    *Denial
}

// Evaluator combines permission, resource-action, and scope checks.
// It is pure: no I/O, no shared mutable state, safe for concurrent use.
type Evaluator struct {
	matrix Matrix
}

// NewEvaluator builds an evaluator over an injected matrix so tests
// may substitute alternate tables.
func NewEvaluator(matrix Matrix) *Evaluator {
	return &Evaluator{matrix: matrix}
}

// Evaluate runs the permission, resource-action, and scope checks in
// that order and stops at the first failure so callers get exactly one
// actionable reason.
func (e *Evaluator) Evaluate(id Identity, req Requirement) Result {
	scope := ResolveScope(id)

	if req.Permission != "" && !e.matrix.HasPermission(id, req.Permission) {
		return Result{Scope: scope, Failure: NewDenial(
			CodeInsufficientPermissions,
			fmt.Sprintf("missing required permission: %s", req.Permission),
			map[string]any{"required_permission": req.Permission},
		)}
	}

	if ra := req.ResourceAction; ra != nil && !e.matrix.CanAccessResource(id, ra.Resource, ra.Action) {
		action := ra.Action
		if action == "" {
			action = "view"
		}
		required := ra.Resource + "." + action
		return Result{Scope: scope, Failure: NewDenial(
			CodeInsufficientPermissions,
			fmt.Sprintf("missing required permission: %s", required),
			map[string]any{"required_permission": required},
		)}
	}

	if req.Scope != nil {
		if denial := ValidateScope(scope, *req.Scope); denial != nil {
			return Result{Scope: scope, Failure: denial}
		}
	}

	return Result{Authorized: true, Scope: scope}
}
