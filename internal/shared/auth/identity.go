package auth

import "strings"

// Roles understood by the placement backend.
const (
	RoleStudent = "student"
	RoleHR      = "hr"
	RoleTPO     = "tpo"
)

// Identity is the caller's session, derived once per request from verified claims
// and passed explicitly to services.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   string
	HRCode string
}

// IdentityFromClaims normalizes verified claims into an Identity.
// Unknown or missing roles default to student.
func IdentityFromClaims(claims Claims) Identity {
	return Identity{
		UserID: claims.Sub,
		Email:  strings.TrimSpace(claims.Email),
		Name:   strings.TrimSpace(claims.Name),
		Role:   NormalizeRole(claims.Role),
		HRCode: strings.TrimSpace(claims.HRCode),
	}
}

// NormalizeRole maps a raw role string to one of the known roles.
func NormalizeRole(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case RoleHR:
		return RoleHR
	case RoleTPO:
		return RoleTPO
	default:
		return RoleStudent
	}
}

// HasRole reports whether the identity holds one of the given roles.
func (i Identity) HasRole(roles ...string) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// IsZero reports whether no caller is attached.
func (i Identity) IsZero() bool {
	return i.UserID == ""
}
