package models

import "time"

// ChatSession groups the messages of one storefront chatbot conversation.
type ChatSession struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Visitor   string    `json:"visitor,omitempty"` // free-form, e.g. email left in the widget
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Messages []ChatMessage `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

func (ChatSession) TableName() string { return "chat_sessions" }

// ChatMessage is a single turn in a chatbot conversation.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"type:uuid;index" json:"sessionId"`
	Role      string    `gorm:"not null" json:"role"` // user | assistant
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ChatMessage) TableName() string { return "chat_messages" }
