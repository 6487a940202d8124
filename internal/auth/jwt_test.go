package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret")
	if err != nil {
		t.Fatalf("NewTokenIssuer failed: %v", err)
	}

	token, expiresAt, err := issuer.GenerateSessionToken("session-123")
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("Expected a signed token")
	}
	if time.Until(expiresAt) < 23*time.Hour {
		t.Errorf("Expected roughly 24h expiry, got %s", time.Until(expiresAt))
	}

	claims, err := issuer.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.SessionID != "session-123" {
		t.Errorf("Expected session-123, got %s", claims.SessionID)
	}
	if claims.Role != "dashboard" {
		t.Errorf("Expected role dashboard, got %s", claims.Role)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewTokenIssuer("secret-one")
	other, _ := NewTokenIssuer("secret-two")

	token, _, err := issuer.GenerateSessionToken("s")
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("Expected validation to fail with a different secret")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	issuer, _ := NewTokenIssuer("secret")
	if _, err := issuer.ValidateToken("not.a.token"); err == nil {
		t.Error("Expected validation to fail for garbage input")
	}
}

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	if _, err := NewTokenIssuer(""); err == nil {
		t.Error("Expected error for empty secret")
	}
}
