package model

import "time"

// Roles stored on a profile.  The volunteer-signup endpoints require admin or
// editor; plain members can authenticate but only reach member-level routes.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleMember = "member"
)

// User mirrors the 'users' table.  A row doubles as the profile record the
// role gate consults: the Role column is what RequireRole checks against.
//
// Fields:
//
//	ID           – primary key identifier.
//	Email        – unique, normalized to lower case.
//	PasswordHash – bcrypt hashed password.
//	FullName     – display name shown in the admin panel.
//	Role         – admin | editor | member.
//	IsActive     – soft disable flag for accounts.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
