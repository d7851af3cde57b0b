package dto

import (
	"time"

	"github.com/google/uuid"
)

// PublishMessageCreated is the payload published on the message.created topic.
type PublishMessageCreated struct {
	MessageId uuid.UUID `json:"message_id"`
	SessionId string    `json:"session_id"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
