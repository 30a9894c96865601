package httpapi

import (
	"net/http"

	"rentio.org/internal/auth"
)

type subscriptionStatusResponse struct {
	Allowed bool           `json:"allowed"`
	Code    string         `json:"code,omitempty"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// handleSubscriptionStatus reports the gate's decision for the
// caller's merchant. The route skips the gate requirement so a lapsed
// tenant can still see why it is locked out.
func (a *API) handleSubscriptionStatus(w http.ResponseWriter, r *http.Request, ra auth.RequestAuth) {
	decision, err := a.gate.Check(r.Context(), ra.Identity)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "subscription lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, subscriptionStatusResponse{
		Allowed: decision.Allowed,
		Code:    decision.Code,
		Message: decision.Message,
		Details: decision.Details,
	})
}
