package models

import "time"

// UserRole names a back-office role.
type UserRole string

const (
	RoleHead    UserRole = "head"
	RoleStaff   UserRole = "staff"
	RoleCentral UserRole = "central"
	RoleAdmin   UserRole = "admin"
)

// Roles lists every role in display order.
var Roles = []UserRole{RoleHead, RoleStaff, RoleCentral, RoleAdmin}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// AdminUser is an account allowed to sign in to the back-office.
type AdminUser struct {
	ID           int64      `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         UserRole   `db:"role" json:"role"`
	Campus       *string    `db:"campus" json:"campus,omitempty"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// CampusName returns the assigned campus or an empty string.
func (u AdminUser) CampusName() string {
	if u.Campus == nil {
		return ""
	}
	return *u.Campus
}
