package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verifier turns an opaque bearer credential into a verified identity.
// Implementations fail with ErrInvalidToken for a bad credential, or
// with ErrPlanLimitExceeded when the issuing side refuses the identity
// for billing reasons.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// Claims are the JWT claims carried by Rentio access tokens.
type Claims struct {
	Email      string       `json:"email,omitempty"`
	Role       string       `json:"role"`
	MerchantID int64        `json:"merchant_id,omitempty"`
	OutletID   int64        `json:"outlet_id,omitempty"`
	Merchant   *MerchantRef `json:"merchant,omitempty"`
	Outlet     *OutletRef   `json:"outlet,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier signs and verifies HS256 access tokens. It is the
// built-in Verifier; deployments backed by an external token service
// substitute their own implementation behind the Verifier interface.
type TokenVerifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// TokenOption configures TokenVerifier behavior.
type TokenOption func(*TokenVerifier)

// WithIssuer overrides the token issuer claim.
func WithIssuer(issuer string) TokenOption {
	return func(v *TokenVerifier) {
		v.issuer = strings.TrimSpace(issuer)
	}
}

// WithTokenClock overrides the verifier time source (useful for tests).
func WithTokenClock(fn func() time.Time) TokenOption {
	return func(v *TokenVerifier) {
		if fn != nil {
			v.now = fn
		}
	}
}

const defaultIssuer = "rentio"

// NewTokenVerifier constructs a TokenVerifier with the given HS256
// secret.
func NewTokenVerifier(secret string, opts ...TokenOption) (*TokenVerifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("auth: token secret is required")
	}
	v := &TokenVerifier{
		secret: []byte(secret),
		issuer: defaultIssuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Issue signs a token for the identity with the given lifetime.
func (v *TokenVerifier) Issue(id Identity, ttl time.Duration) (string, time.Time, error) {
	if !id.Role.Valid() {
		return "", time.Time{}, errors.New("auth: identity role is required")
	}
	if ttl <= 0 {
		return "", time.Time{}, errors.New("auth: ttl must be greater than zero")
	}
	now := v.now().UTC()
	expiresAt := now.Add(ttl)
	claims := Claims{
		Email:      id.Email,
		Role:       id.Role.String(),
		MerchantID: id.MerchantID,
		OutletID:   id.OutletID,
		Merchant:   id.Merchant,
		Outlet:     id.Outlet,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			Subject:   fmt.Sprintf("%d", id.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify validates the token signature and claims and rebuilds the
// request identity. Any validation failure maps to ErrInvalidToken.
func (v *TokenVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrMissingToken
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	}, jwt.WithTimeFunc(v.now), jwt.WithIssuer(v.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	var userID int64
	if _, err := fmt.Sscanf(strings.TrimSpace(claims.Subject), "%d", &userID); err != nil || userID <= 0 {
		return Identity{}, ErrInvalidToken
	}

	id := Identity{
		ID:         userID,
		Email:      claims.Email,
		Role:       ParseRole(claims.Role),
		MerchantID: claims.MerchantID,
		OutletID:   claims.OutletID,
		Merchant:   claims.Merchant,
		Outlet:     claims.Outlet,
	}
	return id, nil
}
