package httpdto

import (
	"time"

	"clinic-chat/internal/domain/message"

	"github.com/samber/lo"
)

type SendFirstMessageRequest struct {
	DoctorName string `json:"doctorName" binding:"required,notblank"`
	PatientID  string `json:"patientId" binding:"required,uuid"`
	Content    string `json:"content" binding:"required,notblank,max=1000"`
}

type SendMessageRequest struct {
	MessageAuthorID string `json:"messageAuthorId" binding:"required,uuid"`
	MessageContent  string `json:"messageContent" binding:"required,notblank,max=1000"`
}

type MessageResponse struct {
	MessageID        string    `json:"messageID"`
	ConversationID   string    `json:"conversationId"`
	MessageAuthorID  string    `json:"messageAuthorId"`
	MessageContent   string    `json:"messageContent"`
	MessageCreatedAt time.Time `json:"messageCreatedAt"`
}

func FromMessage(m message.Message) MessageResponse {
	return MessageResponse{
		MessageID:        m.ID.String(),
		ConversationID:   m.ConversationID.String(),
		MessageAuthorID:  m.AuthorID.String(),
		MessageContent:   m.Content,
		MessageCreatedAt: m.CreatedAt,
	}
}

func FromMessageSlice(items []message.Message) []MessageResponse {
	return lo.Map(items, func(m message.Message, _ int) MessageResponse { return FromMessage(m) })
}
