package repository

import (
	"context"

	"clinic-chat/internal/domain/message"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Save(ctx context.Context, m *message.Message, conversationID uuid.UUID) error {
	m.ConversationID = conversationID
	res := r.db.WithContext(ctx).Create(m)
	return translateWriteError(res.Error, "message")
}

func (r *PostgresMessageRepository) FindByConversationID(ctx context.Context, conversationID uuid.UUID) ([]message.Message, error) {
	messages := []message.Message{}
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, seq ASC").
		Find(&messages).Error
	if err != nil {
		return nil, translateReadError(err, "messages")
	}
	return messages, nil
}

func (r *PostgresMessageRepository) CountByConversationID(ctx context.Context, conversationID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&message.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&total).Error
	if err != nil {
		return 0, translateReadError(err, "messages")
	}
	return total, nil
}

func (r *PostgresMessageRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&message.Message{}).Error
}
