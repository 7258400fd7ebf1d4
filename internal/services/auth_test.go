package services

import (
	"testing"

	"github.com/dw4085/live-polling-app/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(nil, "test-secret")

	token, err := svc.GenerateToken(42, models.RoleSuperadmin)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	adminID, role, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if adminID != 42 {
		t.Errorf("expected admin id 42, got %d", adminID)
	}
	if role != models.RoleSuperadmin {
		t.Errorf("expected role %q, got %q", models.RoleSuperadmin, role)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewAuthService(nil, "secret-one").GenerateToken(1, models.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	if _, _, err := NewAuthService(nil, "secret-two").ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewAuthService(nil, "test-secret")
	if _, _, err := svc.ValidateToken("not-a-jwt"); err == nil {
		t.Fatal("expected validation to fail for malformed token")
	}
}
