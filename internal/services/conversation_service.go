package services

import (
	"context"
	"time"

	"clinic-chat/internal/domain/conversation"
	"clinic-chat/internal/repository"
	clinic_errors "clinic-chat/pkg/errors"
	"clinic-chat/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConversationService owns the conversation lifecycle. A conversation starts
// ACTIVE and moves to CLOSED exactly once; CLOSED is terminal.
type ConversationService struct {
	uow    repository.UnitOfWork
	users  *UserService
	logger *logger.Logger
	now    func() time.Time
}

func NewConversationService(uow repository.UnitOfWork, users *UserService, l *logger.Logger) *ConversationService {
	return &ConversationService{uow: uow, users: users, logger: l, now: utcNow}
}

// FindActiveBetween reports the newest ACTIVE conversation whose participant
// set is exactly {userA, userB}.
func (s *ConversationService) FindActiveBetween(ctx context.Context, userA, userB uuid.UUID) (conversation.Conversation, bool, error) {
	var (
		conv  conversation.Conversation
		found bool
	)
	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		conv, found, err = s.findActiveBetween(ctx, repos, userA, userB)
		return err
	})
	return conv, found, err
}

// Create does not check for an existing ACTIVE conversation; callers do that
// through FindActiveBetween. The store still refuses a second one.
func (s *ConversationService) Create(ctx context.Context, participants []uuid.UUID) (conversation.Conversation, error) {
	var conv conversation.Conversation
	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		conv, err = s.create(ctx, repos, participants)
		return err
	})
	if err != nil {
		return conversation.Conversation{}, err
	}
	s.logCreated(ctx, conv)
	return conv, nil
}

func (s *ConversationService) logCreated(ctx context.Context, conv conversation.Conversation) {
	s.logger.InfoCtx(ctx, "conversation created", zap.String("conversation_id", conv.ID.String()))
}

func (s *ConversationService) Close(ctx context.Context, conversationID, actorID uuid.UUID) (conversation.Conversation, error) {
	var conv conversation.Conversation
	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		conv, err = s.get(ctx, repos, conversationID)
		if err != nil {
			return err
		}
		actor, err := s.users.get(ctx, repos, actorID, "actor user not found")
		if err != nil {
			return err
		}

		if !conv.HasParticipant(actorID) {
			return clinic_errors.Forbidden("not a participant")
		}
		if !actor.IsPatient() {
			return clinic_errors.Forbidden("only patient may close")
		}
		if conv.IsClosed() {
			return clinic_errors.BadRequest("already closed")
		}

		closedAt := s.now()
		if closedAt.Before(conv.CreatedAt) {
			closedAt = conv.CreatedAt
		}
		conv.Status = conversation.StatusClosed
		conv.ClosedAt = &closedAt
		return repos.Conversations.Save(ctx, &conv)
	})
	if err != nil {
		return conversation.Conversation{}, err
	}
	s.logger.InfoCtx(ctx, "conversation closed",
		zap.String("conversation_id", conv.ID.String()),
		zap.String("actor_id", actorID.String()))
	return conv, nil
}

// ListByUser returns every conversation the user takes part in, newest first.
func (s *ConversationService) ListByUser(ctx context.Context, userID uuid.UUID) ([]conversation.Conversation, error) {
	var conversations []conversation.Conversation
	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		conversations, err = repos.Conversations.FindAllByUserID(ctx, userID)
		return err
	})
	return conversations, err
}

func (s *ConversationService) get(ctx context.Context, repos repository.Repositories, id uuid.UUID) (conversation.Conversation, error) {
	conv, err := repos.Conversations.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return conversation.Conversation{}, clinic_errors.NotFound("conversation not found")
		}
		return conversation.Conversation{}, err
	}
	return conv, nil
}

func (s *ConversationService) findActiveBetween(ctx context.Context, repos repository.Repositories, userA, userB uuid.UUID) (conversation.Conversation, bool, error) {
	conv, err := repos.Conversations.FindActiveBetween(ctx, userA, userB)
	if err != nil {
		if isNotFound(err) {
			return conversation.Conversation{}, false, nil
		}
		return conversation.Conversation{}, false, err
	}
	return conv, true, nil
}

func (s *ConversationService) create(ctx context.Context, repos repository.Repositories, participants []uuid.UUID) (conversation.Conversation, error) {
	if len(participants) == 0 {
		return conversation.Conversation{}, clinic_errors.InvalidInput("a conversation needs participants")
	}
	conv := conversation.New(participants, s.now())
	if err := repos.Conversations.Save(ctx, &conv); err != nil {
		return conversation.Conversation{}, err
	}
	return conv, nil
}
