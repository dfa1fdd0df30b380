package auth

import (
	"testing"
	"time"

	"github.com/municipal-services/complaint-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)

	token, expiresAt, err := tm.GenerateToken("cust-1", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Errorf("token already expired at issue time")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.SubjectID != "cust-1" {
		t.Errorf("subject=%q", claims.SubjectID)
	}
	if claims.Role != domain.RoleCustomer {
		t.Errorf("role=%v", claims.Role)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", 30)
	other := NewTokenManager("secret-b", 30)

	token, _, err := tm.GenerateToken("emp-1", domain.RoleEmployee)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := other.ParseToken(token); err == nil {
		t.Fatal("token signed with a different secret was accepted")
	}
}

func TestTokenGarbageRejected(t *testing.T) {
	tm := NewTokenManager("secret", 30)
	if _, err := tm.ParseToken("not-a-jwt"); err == nil {
		t.Fatal("garbage token was accepted")
	}
}
