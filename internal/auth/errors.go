package auth

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidToken indicates the credential failed verification.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrMissingToken indicates no credential was presented.
	ErrMissingToken = errors.New("auth: missing token")
	// ErrPlanLimitExceeded is a verification-time billing signal: the
	// credential issuer refused the identity because the tenant's plan
	// is over its limit. Distinct from a plain bad token.
	ErrPlanLimitExceeded = errors.New("auth: plan limit exceeded")
)

// Denial codes form a closed set; clients key UI behavior off the code,
// never the message text.
const (
	CodeInsufficientPermissions  = "INSUFFICIENT_PERMISSIONS"
	CodeScopeViolation           = "SCOPE_VIOLATION"
	CodeNoMerchant               = "NO_MERCHANT"
	CodeNoSubscription           = "NO_SUBSCRIPTION"
	CodeSubscriptionPaused       = "SUBSCRIPTION_PAUSED"
	CodeSubscriptionCancelled    = "SUBSCRIPTION_CANCELLED"
	CodeSubscriptionExpired      = "SUBSCRIPTION_EXPIRED"
	CodeSubscriptionPastDue      = "SUBSCRIPTION_PAST_DUE"
	CodeSubscriptionPeriodEnded  = "SUBSCRIPTION_PERIOD_ENDED"
	CodeTrialExpired             = "TRIAL_EXPIRED"
	CodeSubscriptionError        = "SUBSCRIPTION_ERROR"
	CodeAuthorizationError       = "AUTHORIZATION_ERROR"
)

// Denial is the typed failure every stage of the pipeline produces.
type Denial struct {
	Code    string
	Message string
	Details map[string]any
}

func (d *Denial) Error() string {
	return d.Message
}

// Status maps the denial code onto an HTTP status. Payment-remediable
// subscription states map to 402; structural or administrative denials
// map to 403.
func (d *Denial) Status() int {
	switch d.Code {
	case CodeSubscriptionPastDue, CodeSubscriptionPeriodEnded,
		CodeTrialExpired, CodeSubscriptionExpired, CodeSubscriptionError:
		return http.StatusPaymentRequired
	case CodeAuthorizationError:
		return http.StatusInternalServerError
	default:
		return http.StatusForbidden
	}
}

// NewDenial builds a Denial with optional detail payload.
func NewDenial(code, message string, details map[string]any) *Denial {
	return &Denial{Code: code, Message: message, Details: details}
}
