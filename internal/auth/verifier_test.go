package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var tokenNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestVerifier(t *testing.T, opts ...TokenOption) *TokenVerifier {
	t.Helper()
	opts = append([]TokenOption{WithTokenClock(fixedClock(tokenNow))}, opts...)
	v, err := NewTokenVerifier("test-secret", opts...)
	if err != nil {
		t.Fatalf("NewTokenVerifier: %v", err)
	}
	return v
}

func TestNewTokenVerifierRequiresSecret(t *testing.T) {
	if _, err := NewTokenVerifier("  "); err == nil {
		t.Fatalf("blank secret must be rejected")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	v := newTestVerifier(t)
	id := Identity{
		ID:         42,
		Email:      "staff@bikehub.example",
		Role:       RoleOutletStaff,
		MerchantID: 7,
		OutletID:   3,
	}

	token, expiresAt, err := v.Issue(id, 15*time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if want := tokenNow.Add(15 * time.Minute); !expiresAt.Equal(want) {
		t.Fatalf("expiresAt = %v, want %v", expiresAt, want)
	}

	got, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.ID != 42 || got.Email != id.Email || got.Role != RoleOutletStaff {
		t.Fatalf("identity not preserved: %+v", got)
	}
	if got.MerchantID != 7 || got.OutletID != 3 {
		t.Fatalf("tenant binding not preserved: %+v", got)
	}
}

func TestTokenCarriesNestedRefs(t *testing.T) {
	v := newTestVerifier(t)
	id := Identity{
		ID:       5,
		Role:     RoleMerchantOwner,
		Merchant: &MerchantRef{ID: 7, Name: "Bike Hub"},
		Outlet:   &OutletRef{ID: 3, Name: "Downtown"},
	}
	token, _, err := v.Issue(id, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	got, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.Merchant == nil || got.Merchant.ID != 7 || got.Merchant.Name != "Bike Hub" {
		t.Fatalf("merchant ref not preserved: %+v", got.Merchant)
	}
	if got.EffectiveMerchantID() != 7 || got.EffectiveOutletID() != 3 {
		t.Fatalf("nested refs must resolve: %+v", got)
	}
}

func TestVerifyMissingToken(t *testing.T) {
	v := newTestVerifier(t)
	if _, err := v.Verify(context.Background(), "   "); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestVerifyGarbageToken(t *testing.T) {
	v := newTestVerifier(t)
	if _, err := v.Verify(context.Background(), "not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	v := newTestVerifier(t)
	token, _, err := v.Issue(Identity{ID: 1, Role: RoleOutletStaff}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other, err := NewTokenVerifier("different-secret", WithTokenClock(fixedClock(tokenNow)))
	if err != nil {
		t.Fatalf("NewTokenVerifier: %v", err)
	}
	if _, err := other.Verify(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyWrongIssuer(t *testing.T) {
	issuing := newTestVerifier(t, WithIssuer("someone-else"))
	token, _, err := issuing.Issue(Identity{ID: 1, Role: RoleOutletStaff}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	v := newTestVerifier(t)
	if _, err := v.Verify(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	v := newTestVerifier(t)
	token, _, err := v.Issue(Identity{ID: 1, Role: RoleOutletStaff}, time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	late, err := NewTokenVerifier("test-secret",
		WithTokenClock(fixedClock(tokenNow.Add(2*time.Minute))))
	if err != nil {
		t.Fatalf("NewTokenVerifier: %v", err)
	}
	if _, err := late.Verify(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyUnknownRoleFailsClosed(t *testing.T) {
	// A token minted elsewhere can carry anything in the role claim;
	// verification must map unknown roles to RoleNone.
	claims := Claims{
		Role: "SUPERUSER",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "rentio",
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(tokenNow),
			ExpiresAt: jwt.NewNumericDate(tokenNow.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	v := newTestVerifier(t)
	got, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.Role != RoleNone {
		t.Fatalf("unknown role must fail closed, got %v", got.Role)
	}
}

func TestIssueValidation(t *testing.T) {
	v := newTestVerifier(t)
	if _, _, err := v.Issue(Identity{ID: 1, Role: RoleNone}, time.Hour); err == nil {
		t.Fatalf("invalid role must be rejected")
	}
	if _, _, err := v.Issue(Identity{ID: 1, Role: RoleOutletStaff}, 0); err == nil {
		t.Fatalf("non-positive ttl must be rejected")
	}
}
