package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	at, err := NewAccessToken("secret", "admin@kmutt.ac.th", "ADMIN", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["sub"] != "admin@kmutt.ac.th" {
		t.Errorf("sub = %v, want email", claims["sub"])
	}
	if claims["role"] != "ADMIN" {
		t.Errorf("role = %v, want ADMIN", claims["role"])
	}
}

func TestRefreshTokensAreUniqueAndHashable(t *testing.T) {
	a, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	b, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if a.Raw == b.Raw {
		t.Error("two refresh tokens must not collide")
	}
	if HashRefreshRaw(a.Raw) == HashRefreshRaw(b.Raw) {
		t.Error("hashes of distinct tokens must differ")
	}
	if HashRefreshRaw(a.Raw) != HashRefreshRaw(a.Raw) {
		t.Error("hash must be deterministic")
	}
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Error("correct password must verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("wrong password must not verify")
	}
}
