package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating an admin user.
type LoginRequest struct {
	Email     string `json:"email" form:"email" validate:"required,email"`
	Password  string `json:"password" form:"password" validate:"required"`
	IP        string `json:"-" form:"-"`
	UserAgent string `json:"-" form:"-"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	User        UserInfo  `json:"user"`
}

// UserInfo describes the signed-in user in responses.
type UserInfo struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Role     UserRole `json:"role"`
	Campus   string   `json:"campus"`
}

// JWTClaims represents the bearer token payload.
type JWTClaims struct {
	UserID   int64    `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Campus   string   `json:"campus"`
	jwt.RegisteredClaims
}

// AuthContext is the identity attached to one request. The zero value is an anonymous caller.
type AuthContext struct {
	IsAuthenticated bool
	UserID          int64
	Email           string
	FullName        string
	Role            UserRole
	Campus          string
}

// HasRole reports whether the caller is authenticated with one of roles.
func (a AuthContext) HasRole(roles ...UserRole) bool {
	if !a.IsAuthenticated {
		return false
	}
	for _, role := range roles {
		if a.Role == role {
			return true
		}
	}
	return false
}

// Info converts the context into the response shape.
func (a AuthContext) Info() UserInfo {
	return UserInfo{ID: a.UserID, Email: a.Email, FullName: a.FullName, Role: a.Role, Campus: a.Campus}
}
