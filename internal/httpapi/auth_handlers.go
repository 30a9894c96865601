package httpapi

import (
	"net/http"
	"strings"
	"time"

	"rentio.org/internal/audit"
	"rentio.org/internal/auth"
)

type tokenRequest struct {
	UserID     int64  `json:"user_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	MerchantID int64  `json:"merchant_id,omitempty"`
	OutletID   int64  `json:"outlet_id,omitempty"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

const tokenTTL = 15 * time.Minute

func (a *API) handleAuthToken(w http.ResponseWriter, r *http.Request) {
	if a.tokens == nil {
		writeError(w, r, http.StatusServiceUnavailable, "token issuance unavailable")
		return
	}

	var req tokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID <= 0 {
		writeError(w, r, http.StatusBadRequest, "user_id is required")
		return
	}
	role := auth.ParseRole(req.Role)
	if !role.Valid() {
		writeError(w, r, http.StatusBadRequest, "role is required")
		return
	}

	identity := auth.Identity{
		ID:         req.UserID,
		Email:      strings.TrimSpace(strings.ToLower(req.Email)),
		Role:       role,
		MerchantID: req.MerchantID,
		OutletID:   req.OutletID,
	}
	token, expiresAt, err := a.tokens.Issue(identity, tokenTTL)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "token generation failed")
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.token.issued", map[string]any{
		"user_id":     identity.ID,
		"role":        role.String(),
		"merchant_id": identity.MerchantID,
		"expires_at":  expiresAt.Format(time.RFC3339),
	})

	writeJSON(w, http.StatusOK, tokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
