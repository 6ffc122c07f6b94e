package dto

import "github.com/noah-isme/arts-admin-api/internal/models"

// LoginResponse is returned after a successful sign-in.
type LoginResponse struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	AccessToken string          `json:"access_token"`
	ExpiresIn   int64           `json:"expires_in"`
	User        models.UserInfo `json:"user"`
}

// SessionResponse describes the caller's current session.
type SessionResponse struct {
	Success       bool             `json:"success"`
	Authenticated bool             `json:"authenticated"`
	User          *models.UserInfo `json:"user,omitempty"`
	CSRFToken     string           `json:"csrf_token,omitempty"`
}
