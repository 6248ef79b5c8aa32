package repository

import (
	"fmt"

	"clinic-chat/internal/domain/conversation"
	"clinic-chat/internal/domain/message"
	"clinic-chat/internal/domain/rating"
	"clinic-chat/internal/domain/user"

	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&user.RoleAssignment{},
		&conversation.Conversation{},
		&conversation.Participant{},
		&message.Message{},
		&rating.Rating{},
	}
}

// InitSchema handles the database schema migration.
// It runs Gorm auto-migration and then the constraints Gorm tags cannot
// express.
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	statements := []string{
		// At most one ACTIVE conversation per participant set.
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_conversations_active_participants
			ON conversations (participant_key)
			WHERE status = 'ACTIVE'`,
		`DO $$ BEGIN
			ALTER TABLE conversations
				ADD CONSTRAINT chk_conversations_closed_at
				CHECK ((status = 'CLOSED') = (closed_at IS NOT NULL) AND (closed_at IS NULL OR closed_at >= created_at));
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$;`,
		`DO $$ BEGIN
			ALTER TABLE messages
				ADD CONSTRAINT fk_messages_conversation
				FOREIGN KEY (conversation_id) REFERENCES conversations (id);
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$;`,
		`DO $$ BEGIN
			ALTER TABLE ratings
				ADD CONSTRAINT fk_ratings_conversation
				FOREIGN KEY (conversation_id) REFERENCES conversations (id);
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$;`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to apply constraint: %w", err)
		}
	}
	return nil
}

// TableNames lists the tables in the order they can be truncated.
func TableNames() []string {
	return []string{"ratings", "messages", "conversation_participants", "conversations", "user_roles", "users"}
}
