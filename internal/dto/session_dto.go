package dto

import "time"

type SessionData struct {
	Id        string     `json:"id"`
	Name      string     `json:"name"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type ShowSessionResponse struct {
	Id            string        `json:"id"`
	Name          string        `json:"name"`
	Active        bool          `json:"active"`
	CreatedAt     time.Time     `json:"created_at"`
	Messages      []MessageData `json:"messages"`
	TotalMessages int64         `json:"total_messages"`
}
