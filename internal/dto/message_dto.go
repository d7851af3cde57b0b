package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubmitMessageRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Author    string `json:"author"`
	Text      string `json:"text" validate:"required"`
	Tip       string `json:"tip"`
}

type MessageData struct {
	Id        uuid.UUID `json:"id"`
	SessionId string    `json:"session_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Tip       string    `json:"tip"`
	CreatedAt time.Time `json:"created_at"`
}

type SubmitMessageResponse struct {
	MessageId     uuid.UUID   `json:"message_id"`
	TotalMessages int64       `json:"total_messages"`
	Data          MessageData `json:"data"`
}

type ListMessagesResponse struct {
	SessionId     string        `json:"session_id"`
	SessionName   string        `json:"session_name"`
	Active        bool          `json:"active"`
	CreatedAt     time.Time     `json:"created_at"`
	Messages      []MessageData `json:"messages"`
	TotalMessages int64         `json:"total_messages"`
}

// AdminMessageData is a message joined with its session for the admin browse view.
type AdminMessageData struct {
	Id          uuid.UUID `json:"id"`
	SessionId   string    `json:"session_id"`
	SessionName string    `json:"session_name"`
	Author      string    `json:"author"`
	Text        string    `json:"text"`
	Tip         string    `json:"tip"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListAllMessagesResponse struct {
	Messages []AdminMessageData `json:"messages"`
	Total    int                `json:"total"`
}
