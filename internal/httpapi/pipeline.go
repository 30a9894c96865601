package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"rentio.org/internal/audit"
	"rentio.org/internal/auth"
	"rentio.org/internal/obs"
)

const (
	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
)

const (
	stageCredential    = "credential"
	stageAuthorization = "authorization"
	stageSubscription  = "subscription"
	codeAllow          = "allow"
)

// ProtectedHandler receives the verified identity and resolved scope
// after the full pipeline has passed.
type ProtectedHandler func(w http.ResponseWriter, r *http.Request, ra auth.RequestAuth)

// Protect builds the request pipeline for a requirement:
// credential verification, authorization evaluation, subscription
// gating, then the inner handler. Every protected endpoint funnels
// through this single implementation; named pipelines only pre-bind
// the Requirement.
func (a *API) Protect(requirement auth.Requirement, next ProtectedHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ra, ok := a.runPipeline(w, r, requirement)
		if !ok {
			return
		}
		ctx := auth.ContextWithRequestAuth(r.Context(), ra)
		next(w, r.WithContext(ctx), ra)
	})
}

// runPipeline executes stages 1-3. It never lets an internal panic
// reach the transport layer: anything unexpected becomes a generic
// 500 "Authentication error".
func (a *API) runPipeline(w http.ResponseWriter, r *http.Request, requirement auth.Requirement) (ra auth.RequestAuth, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			obs.RecordAuthzDecision(stageCredential, auth.CodeAuthorizationError)
			writeDenial(w, r, http.StatusInternalServerError, auth.CodeAuthorizationError, "Authentication error", nil)
			ra, ok = auth.RequestAuth{}, false
		}
	}()

	// Stage 1: credential verification.
	token, err := extractBearerToken(r.Header.Get(authHeader))
	if err != nil {
		obs.RecordAuthzDecision(stageCredential, auth.CodeAuthorizationError)
		writeDenial(w, r, http.StatusUnauthorized, auth.CodeAuthorizationError, "Access token required", nil)
		return auth.RequestAuth{}, false
	}

	identity, err := a.verifier.Verify(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPlanLimitExceeded):
			// The one verification-time failure that is billing-flavored,
			// distinguished from a plain bad token.
			obs.RecordAuthzDecision(stageCredential, auth.CodeSubscriptionError)
			writeDenial(w, r, http.StatusPaymentRequired, auth.CodeSubscriptionError, "subscription limit reached", nil)
		case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
			obs.RecordAuthzDecision(stageCredential, auth.CodeAuthorizationError)
			writeDenial(w, r, http.StatusUnauthorized, auth.CodeAuthorizationError, "Invalid token", nil)
		default:
			obs.RecordAuthzDecision(stageCredential, auth.CodeAuthorizationError)
			writeDenial(w, r, http.StatusInternalServerError, auth.CodeAuthorizationError, "Authentication error", nil)
		}
		return auth.RequestAuth{}, false
	}
	obs.RecordAuthzDecision(stageCredential, codeAllow)

	// Stage 2: authorization evaluation.
	result := a.evaluator.Evaluate(identity, requirement)
	if !result.Authorized {
		failure := result.Failure
		obs.RecordAuthzDecision(stageAuthorization, failure.Code)
		a.auditDenial(r, identity, stageAuthorization, failure.Code)
		writeDenial(w, r, http.StatusForbidden, failure.Code, failure.Message, failure.Details)
		return auth.RequestAuth{}, false
	}
	obs.RecordAuthzDecision(stageAuthorization, codeAllow)

	// Stage 3: subscription gate, skipped for system admins and for
	// pipelines that opt out.
	if !requirement.SkipSubscriptionCheck && !identity.Role.IsSystemAdmin() {
		decision, err := a.gate.Check(r.Context(), identity)
		if err != nil {
			obs.RecordAuthzDecision(stageSubscription, auth.CodeAuthorizationError)
			writeDenial(w, r, http.StatusInternalServerError, auth.CodeAuthorizationError, "Authentication error", nil)
			return auth.RequestAuth{}, false
		}
		if !decision.Allowed {
			obs.RecordAuthzDecision(stageSubscription, decision.Code)
			obs.RecordGateDenial(decision.Code)
			a.auditDenial(r, identity, stageSubscription, decision.Code)
			denial := decision.Denial()
			writeDenial(w, r, denial.Status(), denial.Code, denial.Message, denial.Details)
			return auth.RequestAuth{}, false
		}
	}
	obs.RecordAuthzDecision(stageSubscription, codeAllow)

	return auth.RequestAuth{Identity: identity, Scope: result.Scope}, true
}

func (a *API) auditDenial(r *http.Request, identity auth.Identity, stage, code string) {
	_ = audit.LogEvent(r.Context(), "authz.denied", map[string]any{
		"stage":       stage,
		"code":        code,
		"path":        r.URL.Path,
		"method":      r.Method,
		"user_id":     identity.ID,
		"role":        identity.Role.String(),
		"merchant_id": identity.EffectiveMerchantID(),
	})
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearerPrefix)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}
