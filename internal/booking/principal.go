package booking

import "github.com/boy52hz/OASIP-US-3-V2/internal/model"

// Role is the closed set of principal kinds the engine distinguishes.
// Keeping it a typed constant set lets the scope resolver switch over
// every case explicitly instead of comparing role strings at each site.
type Role int

const (
	RoleGuest Role = iota
	RoleStudent
	RoleLecturer
	RoleAdmin
)

// Principal describes the caller of a single request as supplied by the
// auth collaborator. Guests carry an empty email. Principals are derived
// per request and never persisted.
type Principal struct {
	Role  Role
	Email string
}

// Guest returns the principal of an unauthenticated request.
func Guest() Principal { return Principal{Role: RoleGuest} }

// RoleFromString maps a stored or token role name onto a Role. Unknown
// names fall back to guest so a malformed claim never grants access.
func RoleFromString(name string) Role {
	switch name {
	case model.RoleAdmin:
		return RoleAdmin
	case model.RoleLecturer:
		return RoleLecturer
	case model.RoleStudent:
		return RoleStudent
	default:
		return RoleGuest
	}
}

// IsGuest reports whether the principal is unauthenticated.
func (p Principal) IsGuest() bool { return p.Role == RoleGuest }

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }
