package services

import (
	"context"
	"strings"
	"time"

	"clinic-chat/internal/domain/conversation"
	"clinic-chat/internal/domain/message"
	"clinic-chat/internal/domain/user"
	"clinic-chat/internal/repository"
	clinic_errors "clinic-chat/pkg/errors"
	"clinic-chat/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MessageService posts and lists messages. Patients open threads; doctors only
// ever reply.
type MessageService struct {
	uow           repository.UnitOfWork
	users         *UserService
	conversations *ConversationService
	logger        *logger.Logger
	now           func() time.Time
}

func NewMessageService(uow repository.UnitOfWork, users *UserService, conversations *ConversationService, l *logger.Logger) *MessageService {
	return &MessageService{
		uow:           uow,
		users:         users,
		conversations: conversations,
		logger:        l,
		now:           utcNow,
	}
}

// SendFirst sends a patient's message to the doctor with the given display
// name, reusing their ACTIVE conversation or opening a new one.
func (s *MessageService) SendFirst(ctx context.Context, doctorName string, patientID uuid.UUID, content string) (message.Message, error) {
	if strings.TrimSpace(doctorName) == "" {
		return message.Message{}, clinic_errors.BadRequest("doctor name cannot be blank")
	}
	if err := validateContent(content); err != nil {
		return message.Message{}, err
	}

	var (
		msg     message.Message
		conv    conversation.Conversation
		created bool
	)
	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		patient, err := s.users.get(ctx, repos, patientID, "patient not found")
		if err != nil {
			return err
		}
		if !patient.IsPatient() {
			return clinic_errors.Forbidden("only a patient can initiate a message")
		}

		doctors, err := repos.Users.FindByNameAndRole(ctx, doctorName, user.RoleDoctor)
		if err != nil {
			return err
		}
		switch {
		case len(doctors) == 0:
			return clinic_errors.NotFound("no doctor found with this name: " + doctorName)
		case len(doctors) > 1:
			return clinic_errors.BadRequest("ambiguous doctor name")
		}
		doctor := doctors[0]

		var found bool
		conv, found, err = s.conversations.findActiveBetween(ctx, repos, patient.ID, doctor.ID)
		if err != nil {
			return err
		}
		if !found {
			conv, err = s.conversations.create(ctx, repos, []uuid.UUID{patient.ID, doctor.ID})
			if err != nil {
				return err
			}
			created = true
		}

		msg = message.New(conv.ID, patient.ID, content, s.now())
		return repos.Messages.Save(ctx, &msg, conv.ID)
	})
	if err != nil {
		return message.Message{}, err
	}

	if created {
		s.conversations.logCreated(ctx, conv)
	}
	s.logger.InfoCtx(ctx, "message sent",
		zap.String("conversation_id", conv.ID.String()),
		zap.String("author_id", patientID.String()))
	return msg, nil
}

// Send posts a message to an existing conversation.
func (s *MessageService) Send(ctx context.Context, conversationID, authorID uuid.UUID, content string) (message.Message, error) {
	if authorID == uuid.Nil {
		return message.Message{}, clinic_errors.BadRequest("author id is required")
	}
	if err := validateContent(content); err != nil {
		return message.Message{}, err
	}

	var msg message.Message
	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		conv, err := s.conversations.get(ctx, repos, conversationID)
		if err != nil {
			return err
		}
		if conv.IsClosed() {
			return clinic_errors.BadRequest("conversation closed")
		}
		if !conv.HasParticipant(authorID) {
			return clinic_errors.Forbidden("not a participant")
		}

		author, err := s.users.get(ctx, repos, authorID, "author user not found")
		if err != nil {
			return err
		}

		if author.IsDoctor() {
			count, err := repos.Messages.CountByConversationID(ctx, conv.ID)
			if err != nil {
				return err
			}
			if count == 0 {
				return clinic_errors.Forbidden("doctor cannot initiate")
			}
		}

		msg = message.New(conv.ID, authorID, content, s.now())
		return repos.Messages.Save(ctx, &msg, conv.ID)
	})
	if err != nil {
		return message.Message{}, err
	}

	s.logger.InfoCtx(ctx, "message sent",
		zap.String("conversation_id", conversationID.String()),
		zap.String("author_id", authorID.String()))
	return msg, nil
}

// List returns the conversation's messages oldest first. An unknown
// conversation yields an empty list, not an error.
func (s *MessageService) List(ctx context.Context, conversationID uuid.UUID) ([]message.Message, error) {
	var messages []message.Message
	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		messages, err = repos.Messages.FindByConversationID(ctx, conversationID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []message.Message{}
	}
	return messages, nil
}
