package auth

import (
	"context"
	"fmt"
	"time"

	"rentio.org/internal/tenant"
)

// Decision is the subscription gate's classification of a tenant's
// billing state for one request.
type Decision struct {
	Allowed bool
	Code    string
	Message string
	Details map[string]any
}

// SubscriptionGate classifies a tenant's subscription into allow/deny
// with a stable reason code. It only reads billing state, never
// mutates it.
type SubscriptionGate struct {
	tenants tenant.Store
	now     func() time.Time
}

// GateOption configures SubscriptionGate behavior.
type GateOption func(*SubscriptionGate)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) GateOption {
	return func(g *SubscriptionGate) {
		if fn != nil {
			g.now = fn
		}
	}
}

// NewSubscriptionGate constructs the gate over a read-only tenant
// store.
func NewSubscriptionGate(tenants tenant.Store, opts ...GateOption) *SubscriptionGate {
	g := &SubscriptionGate{tenants: tenants, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check runs the fixed decision order: system admins bypass, then
// merchant binding, record existence, status classification, and
// finally the soft-expiry bounds. "Now" is captured exactly once so a
// request cannot straddle an expiry instant mid-decision. A non-nil
// error means the persistence read failed; that is a pipeline failure,
// not a denial.
func (g *SubscriptionGate) Check(ctx context.Context, id Identity) (Decision, error) {
	if id.Role.IsSystemAdmin() {
		return Decision{Allowed: true}, nil
	}

	now := g.now().UTC()

	merchantID := id.EffectiveMerchantID()
	if merchantID == 0 {
		return deny(CodeNoMerchant, "no merchant is associated with this account", nil), nil
	}

	sub, err := g.tenants.FindSubscription(ctx, merchantID)
	if err != nil {
		if err == tenant.ErrNotFound {
			return deny(CodeNoSubscription, "no subscription found for this merchant", g.merchantDetails(ctx, merchantID)), nil
		}
		return Decision{}, fmt.Errorf("load subscription for merchant %d: %w", merchantID, err)
	}

	details := g.merchantDetails(ctx, merchantID)

	switch sub.Status {
	case tenant.StatusPaused:
		return deny(CodeSubscriptionPaused, "subscription is paused", details), nil
	case tenant.StatusCancelled:
		return deny(CodeSubscriptionCancelled, "subscription has been cancelled", details), nil
	case tenant.StatusExpired:
		return deny(CodeSubscriptionExpired, "subscription has expired", details), nil
	case tenant.StatusPastDue:
		return deny(CodeSubscriptionPastDue, "subscription payment is past due", details), nil
	}

	// Soft expiry: the stored status may lag behind the clock when the
	// billing job has not run yet, so ACTIVE and TRIAL are additionally
	// time-bounded. A bound equal to now already denies.
	if sub.Status == tenant.StatusActive && sub.CurrentPeriodEnd != nil && !sub.CurrentPeriodEnd.After(now) {
		return deny(CodeSubscriptionPeriodEnded, "subscription period has ended", details), nil
	}
	if sub.Status == tenant.StatusTrial && sub.TrialEnd != nil && !sub.TrialEnd.After(now) {
		return deny(CodeTrialExpired, "trial period has expired", details), nil
	}

	return Decision{Allowed: true}, nil
}

// merchantDetails enriches deny payloads with the merchant id and name
// for client display. A failed lookup degrades to id-only details.
func (g *SubscriptionGate) merchantDetails(ctx context.Context, merchantID int64) map[string]any {
	details := map[string]any{"merchant_id": merchantID}
	m, err := g.tenants.FindMerchant(ctx, merchantID)
	if err == nil && m != nil {
		details["merchant_name"] = m.Name
	}
	return details
}

func deny(code, message string, details map[string]any) Decision {
	return Decision{Code: code, Message: message, Details: details}
}

// Denial converts a deny decision into the pipeline's typed error.
func (d Decision) Denial() *Denial {
	if d.Allowed {
		return nil
	}
	return NewDenial(d.Code, d.Message, d.Details)
}
