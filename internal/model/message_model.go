package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId string    `gorm:"type:text;not null;index"`
	Author    string    `gorm:"type:varchar(50);not null;default:'Anónimo'"`
	Text      string    `gorm:"type:varchar(500);not null"`
	Tip       string    `gorm:"type:varchar(50);not null;default:'Sin propina'"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	Session *Session `gorm:"foreignKey:SessionId;references:Id"`
}

func (Message) TableName() string {
	return "messages"
}

// MessageWithSessionRow is the scan target for the admin all-messages query,
// which joins each message with its session name.
type MessageWithSessionRow struct {
	Id          uuid.UUID
	SessionId   string
	Author      string
	Text        string
	Tip         string
	CreatedAt   time.Time
	SessionName string
}
