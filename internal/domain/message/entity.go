package message

import (
	"time"

	"github.com/google/uuid"
)

const MaxContentLength = 1000

// Message represents the messages table
type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_conversation_order,priority:1"`
	AuthorID       uuid.UUID `gorm:"type:uuid;not null"`
	Content        string    `gorm:"type:varchar(1000);not null"`
	CreatedAt      time.Time `gorm:"not null;index:idx_messages_conversation_order,priority:2"`
	// Seq is assigned by the store on insert and breaks CreatedAt ties.
	Seq int64 `gorm:"autoIncrement;not null;index:idx_messages_conversation_order,priority:3"`
}

func (Message) TableName() string {
	return "messages"
}

func New(conversationID, authorID uuid.UUID, content string, now time.Time) Message {
	return Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		AuthorID:       authorID,
		Content:        content,
		CreatedAt:      now,
	}
}
