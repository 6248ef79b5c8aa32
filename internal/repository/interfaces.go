package repository

import (
	"context"

	"github.com/google/uuid"

	"clinic-chat/internal/domain/conversation"
	"clinic-chat/internal/domain/message"
	"clinic-chat/internal/domain/rating"
	"clinic-chat/internal/domain/user"
)

// Lookups that find nothing return clinic_errors.ErrNotFound. Writes that
// violate a store uniqueness constraint return clinic_errors.ErrConflict.

type UserRepository interface {
	Save(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (user.User, error)
	FindAll(ctx context.Context) ([]user.User, error)
	FindByRole(ctx context.Context, role user.Role) ([]user.User, error)
	FindByNameAndRole(ctx context.Context, name string, role user.Role) ([]user.User, error)
	DeleteAll(ctx context.Context) error
}

type ConversationRepository interface {
	// Save inserts a new conversation or updates status and closed_at of an
	// existing one. Participants are written on insert only.
	Save(ctx context.Context, c *conversation.Conversation) error
	FindByID(ctx context.Context, id uuid.UUID) (conversation.Conversation, error)
	// FindAllByUserID is ordered by created_at descending.
	FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]conversation.Conversation, error)
	// FindActiveBetween returns the newest ACTIVE conversation whose
	// participant set is exactly {userA, userB}.
	FindActiveBetween(ctx context.Context, userA, userB uuid.UUID) (conversation.Conversation, error)
	DeleteAll(ctx context.Context) error
}

type MessageRepository interface {
	Save(ctx context.Context, m *message.Message, conversationID uuid.UUID) error
	// FindByConversationID is ordered by created_at, then seq, ascending.
	FindByConversationID(ctx context.Context, conversationID uuid.UUID) ([]message.Message, error)
	CountByConversationID(ctx context.Context, conversationID uuid.UUID) (int64, error)
	DeleteAll(ctx context.Context) error
}

type RatingRepository interface {
	Save(ctx context.Context, r *rating.Rating) error
	FindByConversationAndPatient(ctx context.Context, conversationID, patientID uuid.UUID) (rating.Rating, error)
	// AverageForDoctor reports ok=false when the doctor has no ratings.
	AverageForDoctor(ctx context.Context, doctorID uuid.UUID) (avg float64, ok bool, err error)
	CountForDoctor(ctx context.Context, doctorID uuid.UUID) (int64, error)
	DeleteAll(ctx context.Context) error
}

// Repositories is the set of repositories bound to one unit of work.
type Repositories struct {
	Users         UserRepository
	Conversations ConversationRepository
	Messages      MessageRepository
	Ratings       RatingRepository
}

// UnitOfWork runs fn atomically: everything fn writes through repos is
// committed when fn returns nil and discarded when it returns an error.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// HealthChecker is implemented by stores that can report liveness.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
