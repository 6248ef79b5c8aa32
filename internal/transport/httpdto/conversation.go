package httpdto

import (
	"time"

	"clinic-chat/internal/domain/conversation"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type ConversationResponse struct {
	ConversationID      string     `json:"conversationID"`
	ParticipantIDList   []string   `json:"participantIdList"`
	ConversationStatus  string     `json:"conversationStatus"`
	ConversationCreated time.Time  `json:"conversationCreatedAt"`
	ConversationClosed  *time.Time `json:"conversationClosedAt"`
}

func FromConversation(c conversation.Conversation) ConversationResponse {
	return ConversationResponse{
		ConversationID:      c.ID.String(),
		ParticipantIDList:   lo.Map(c.ParticipantIDs(), func(id uuid.UUID, _ int) string { return id.String() }),
		ConversationStatus:  string(c.Status),
		ConversationCreated: c.CreatedAt,
		ConversationClosed:  c.ClosedAt,
	}
}

func FromConversationSlice(items []conversation.Conversation) []ConversationResponse {
	return lo.Map(items, func(c conversation.Conversation, _ int) ConversationResponse { return FromConversation(c) })
}
