package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret-key")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, 42, "alice@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "alice@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	expiry := claims.ExpiresAt.Time
	if d := time.Until(expiry); d < 23*time.Hour || d > 25*time.Hour {
		t.Fatalf("expected ~24h expiry, got %v", d)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, 1, "a@b.co")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken([]byte("other-secret"), token); err == nil {
		t.Fatal("expected verification failure")
	}
}

func TestParseTokenExpired(t *testing.T) {
	claims := Claims{
		UserID: 1,
		Email:  "a@b.co",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_, err = ParseToken(testSecret, signed)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken(testSecret, "not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
