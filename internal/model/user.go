package model

import "time"

// Role names stored in the `user` table. The role decides which listing
// scope the access resolver computes for a request.
const (
	RoleAdmin    = "ADMIN"
	RoleLecturer = "LECTURER"
	RoleStudent  = "STUDENT"
)

// User represents an application user record as stored in the `user`
// table. Guests are not persisted; an unauthenticated request simply has
// no user row behind it.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique email address; also the JWT subject.
//  PasswordHash – bcrypt hashed password.
//  Role         – one of ADMIN, LECTURER, STUDENT.
//  CreatedOn    – timestamp of creation.
//  UpdatedOn    – timestamp of last update.
type User struct {
	ID           int       // user.id
	Name         string    // user.name
	Email        string    // user.email
	PasswordHash string    // user.password_hash
	Role         string    // user.role
	CreatedOn    time.Time // user.created_on
	UpdatedOn    time.Time // user.updated_on
}

// RefreshToken models an entry in the `refresh_token` table. Each refresh
// token belongs to a user; only the SHA-256 hash of the raw value is
// stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        int        // refresh_token.id
	UserID    int        // refresh_token.user_id
	TokenHash string     // refresh_token.token_hash
	ExpiresAt time.Time  // refresh_token.expires_at
	RevokedAt *time.Time // refresh_token.revoked_at (nullable)
	CreatedAt time.Time  // refresh_token.created_at
}
