package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is immutable once created; conversation order is created_at
// ascending with id as the tie-break.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	Sender      User      `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	Recipient   User      `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"-"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// BeforeCreate rejects messages with no body
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.Body == "" {
		return gorm.ErrInvalidData
	}
	return nil
}

// Involves reports whether the user is a party to the message
func (m *Message) Involves(userID uint) bool {
	return m.SenderID == userID || m.RecipientID == userID
}

// FormattedCreatedAt renders the timestamp the way chat views display it
func (m *Message) FormattedCreatedAt() string {
	return m.CreatedAt.Format("01/02/2006 15:04:05")
}

func (Message) TableName() string {
	return "messages"
}
