package dto

import "time"

// LoginRequest cuerpo de POST /api/auth/login.
type LoginRequest struct {
	Password string `json:"password" validate:"required,max=256"`
}

// LoginResponse token de sesión.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionResponse respuesta de GET /api/auth/session.
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	Subject   string    `json:"subject"`
	ExpiresAt time.Time `json:"expires_at"`
}
