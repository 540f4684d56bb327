package dto

import "github.com/monikajha100/prime-admin-gateway/internal/models"

// LoginRequest carries admin UI credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest creates a new account through the gateway.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
}

// SessionResponse is returned after login/register/impersonate and from the
// "who am I" endpoint.
type SessionResponse struct {
	SessionID     string      `json:"session_id"`
	User          models.User `json:"user"`
	Impersonating bool        `json:"impersonating"`
}
