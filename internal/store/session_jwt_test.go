package store

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func TestJWTSessionRoundTrip(t *testing.T) {
	sessions := NewJWTSessionStore("test-secret", time.Hour)

	token, err := sessions.NewSession("admin-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	userID, found, err := sessions.GetUserIDByToken(token)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if !found || userID != "admin-1" {
		t.Fatalf("session lookup = (%q, %v), want (admin-1, true)", userID, found)
	}
}

func TestJWTSessionRejectsWrongSecret(t *testing.T) {
	sessions := NewJWTSessionStore("secret-a", time.Hour)
	other := NewJWTSessionStore("secret-b", time.Hour)

	token, err := sessions.NewSession("admin-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, found, err := other.GetUserIDByToken(token); err == nil || found {
		t.Fatalf("token accepted with wrong secret: found=%v err=%v", found, err)
	}
}

func TestJWTSessionRejectsExpiredToken(t *testing.T) {
	sessions := NewJWTSessionStore("test-secret", -time.Minute)

	token, err := sessions.NewSession("admin-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, found, err := sessions.GetUserIDByToken(token); err == nil || found {
		t.Fatalf("expired token accepted: found=%v err=%v", found, err)
	}
}

func TestJWTSessionRejectsUnsignedAlgorithm(t *testing.T) {
	sessions := NewJWTSessionStore("test-secret", time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "admin-1",
		Issuer:    "leanacademy-admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}
	if _, found, err := sessions.GetUserIDByToken(token); err == nil || found {
		t.Fatalf("alg=none token accepted: found=%v err=%v", found, err)
	}
}

func TestJWTSessionRejectsWrongIssuer(t *testing.T) {
	sessions := NewJWTSessionStore("test-secret", time.Hour)

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   "admin-1",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, found, err := sessions.GetUserIDByToken(token); err == nil || found {
		t.Fatalf("wrong-issuer token accepted: found=%v err=%v", found, err)
	}
}
