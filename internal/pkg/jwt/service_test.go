package jwt

import (
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, role string, exp time.Time) string {
	t.Helper()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(exp),
			IssuedAt:  jwtlib.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	s, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return s
}

func TestValidateToken_Valid(t *testing.T) {
	v := NewHMACVerifier(testSecret)
	token := signToken(t, testSecret, RoleAdmin, time.Now().Add(time.Hour))

	claims, err := v.ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.Role != RoleAdmin {
		t.Fatalf("expected role admin, got %q", claims.Role)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	v := NewHMACVerifier(testSecret)
	token := signToken(t, testSecret, RoleAdmin, time.Now().Add(-time.Hour))

	if _, err := v.ValidateToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	v := NewHMACVerifier(testSecret)
	token := signToken(t, "another-secret", RoleAdmin, time.Now().Add(time.Hour))

	if _, err := v.ValidateToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	v := NewHMACVerifier(testSecret)
	if _, err := v.ValidateToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateToken_EmptySecret(t *testing.T) {
	v := NewHMACVerifier("")
	token := signToken(t, testSecret, RoleAdmin, time.Now().Add(time.Hour))
	if _, err := v.ValidateToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
