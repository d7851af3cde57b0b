package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single farewell entry. Messages are created once, never
// updated, and may only be hard-deleted by an administrator.
type Message struct {
	Id        uuid.UUID
	SessionId string
	Author    string
	Text      string
	Tip       string
	CreatedAt time.Time
}

// MessageWithSession joins a message with the minimal session info needed by
// the admin browse view.
type MessageWithSession struct {
	Message
	SessionName string
}
