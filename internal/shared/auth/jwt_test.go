package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSignVerifyRoundTripCarriesRole(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignJWT(Claims{Sub: "hr-1", Email: "hr@acme.test", Role: "HR", HRCode: "ACME"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	id := IdentityFromClaims(claims)
	if id.Role != RoleHR || id.HRCode != "ACME" || id.UserID != "hr-1" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestVerifyRejectsTamperedAndExpired(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignJWT(Claims{Sub: "u1"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifyJWT(token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}

	expired, err := SignJWT(Claims{Sub: "u1", Iat: 1, Exp: time.Now().Add(-time.Minute).Unix()})
	if err != nil {
		t.Fatalf("sign expired: %v", err)
	}
	if _, err := VerifyJWT(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")
	if _, err := SignJWT(Claims{Sub: "u1"}); err == nil {
		t.Fatalf("expected error without secret in production")
	}
}

func TestNormalizeRoleDefaultsToStudent(t *testing.T) {
	if got := NormalizeRole("admin"); got != RoleStudent {
		t.Fatalf("expected student, got %q", got)
	}
	if got := NormalizeRole(" TPO "); got != RoleTPO {
		t.Fatalf("expected tpo, got %q", got)
	}
}
