package auth

import "context"

// RequestAuth bundles the verified identity and its resolved scope for
// inner handlers.
type RequestAuth struct {
	Identity Identity
	Scope    Scope
}

type requestAuthContextKey struct{}

// ContextWithRequestAuth attaches the authenticated identity and scope
// to the context.
func ContextWithRequestAuth(ctx context.Context, ra RequestAuth) context.Context {
	return context.WithValue(ctx, requestAuthContextKey{}, &ra)
}

// RequestAuthFromContext extracts the authenticated identity and scope
// from the context.
func RequestAuthFromContext(ctx context.Context) (RequestAuth, bool) {
	if ctx == nil {
		return RequestAuth{}, false
	}
	v, ok := ctx.Value(requestAuthContextKey{}).(*RequestAuth)
	if !ok || v == nil {
		return RequestAuth{}, false
	}
	return *v, true
}
