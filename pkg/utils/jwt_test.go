package utils

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "docforge")
	tok, err := m.GenerateAccessToken("u-1", "a@b.c", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ParseToken(tok)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "u-1" || claims.Email != "a@b.c" || claims.Type != TokenTypeAccess {
		t.Fatalf("claims=%+v", claims)
	}
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("secret", "docforge")
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := m.GenerateAccessToken("u-1", "a@b.c", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := NewJWTManager("secret", "docforge").ParseToken(tok); err != ErrExpiredToken {
		t.Fatalf("err=%v want ErrExpiredToken", err)
	}
}

func TestJWTRejectsWrongSecretAndIssuer(t *testing.T) {
	tok, err := NewJWTManager("secret", "docforge").GenerateAccessToken("u-1", "", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := NewJWTManager("other", "docforge").ParseToken(tok); err != ErrInvalidToken {
		t.Fatalf("wrong secret: err=%v", err)
	}
	if _, err := NewJWTManager("secret", "someone-else").ParseToken(tok); err != ErrInvalidToken {
		t.Fatalf("wrong issuer: err=%v", err)
	}
	if _, err := NewJWTManager("secret", "docforge").ParseToken("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("garbage: err=%v", err)
	}
}
