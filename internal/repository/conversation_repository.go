package repository

import (
	"context"
	"fmt"

	"clinic-chat/internal/domain/conversation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &PostgresConversationRepository{db: db}
}

func (r *PostgresConversationRepository) Save(ctx context.Context, c *conversation.Conversation) error {
	var existing int64
	if err := r.db.WithContext(ctx).
		Model(&conversation.Conversation{}).
		Where("id = ?", c.ID).
		Count(&existing).Error; err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}

	if existing == 0 {
		res := r.db.WithContext(ctx).Create(c)
		return translateWriteError(res.Error, "active conversation for these participants")
	}

	res := r.db.WithContext(ctx).
		Model(&conversation.Conversation{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"status":    c.Status,
			"closed_at": c.ClosedAt,
		})
	return translateWriteError(res.Error, "active conversation for these participants")
}

func (r *PostgresConversationRepository) FindByID(ctx context.Context, id uuid.UUID) (conversation.Conversation, error) {
	var c conversation.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants", orderedParticipants).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return conversation.Conversation{}, translateReadError(err, "conversation")
	}
	return c, nil
}

func (r *PostgresConversationRepository) FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]conversation.Conversation, error) {
	var conversations []conversation.Conversation

	subQuery := r.db.Model(&conversation.Participant{}).
		Select("conversation_id").
		Where("user_id = ?", userID)

	err := r.db.WithContext(ctx).
		Preload("Participants", orderedParticipants).
		Where("id IN (?)", subQuery).
		Order("created_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, translateReadError(err, "conversations")
	}
	return conversations, nil
}

func (r *PostgresConversationRepository) FindActiveBetween(ctx context.Context, userA, userB uuid.UUID) (conversation.Conversation, error) {
	var c conversation.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants", orderedParticipants).
		Where("participant_key = ? AND status = ?", conversation.KeyFor(userA, userB), conversation.StatusActive).
		Order("created_at DESC").
		First(&c).Error
	if err != nil {
		return conversation.Conversation{}, translateReadError(err, "active conversation")
	}
	return c, nil
}

func (r *PostgresConversationRepository) DeleteAll(ctx context.Context) error {
	db := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := db.Delete(&conversation.Participant{}).Error; err != nil {
		return err
	}
	return db.Delete(&conversation.Conversation{}).Error
}

func orderedParticipants(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
