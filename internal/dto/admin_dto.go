package dto

import "time"

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn string `json:"expires_in"`
}

type AdminSessionData struct {
	Id           string     `json:"id"`
	Name         string     `json:"name"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	MessageCount int64      `json:"message_count"`
	LastMessage  *time.Time `json:"last_message,omitempty"`
}

type ListSessionsResponse struct {
	Sessions []AdminSessionData `json:"sessions"`
	Total    int                `json:"total"`
}

type CreateSessionRequest struct {
	Name string `json:"name" validate:"required"`
	Id   string `json:"id"`
}

type UpdateSessionRequest struct {
	SessionId string  `json:"session_id" validate:"required"`
	Name      *string `json:"name"`
	Active    *bool   `json:"active"`
}
