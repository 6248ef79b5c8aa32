package handler

import (
	"net/http"

	"clinic-chat/internal/services"
	"clinic-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) SendFirst(c *gin.Context) {
	var req httpdto.SendFirstMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	patientID := uuid.MustParse(req.PatientID)

	ctx := c.Request.Context()
	if err := services.AuthorizeActor(ctx, patientID); err != nil {
		_ = c.Error(err)
		return
	}

	msg, err := h.service.SendFirst(ctx, req.DoctorName, patientID, req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusCreated, httpdto.FromMessage(msg))
}

func (h *MessageHandler) Send(c *gin.Context) {
	conversationID, valid := uuidParam(c, "conversationId")
	if !valid {
		return
	}
	var req httpdto.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	authorID := uuid.MustParse(req.MessageAuthorID)

	ctx := c.Request.Context()
	if err := services.AuthorizeActor(ctx, authorID); err != nil {
		_ = c.Error(err)
		return
	}

	msg, err := h.service.Send(ctx, conversationID, authorID, req.MessageContent)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusCreated, httpdto.FromMessage(msg))
}

func (h *MessageHandler) List(c *gin.Context) {
	conversationID, valid := uuidParam(c, "conversationId")
	if !valid {
		return
	}

	items, err := h.service.List(c.Request.Context(), conversationID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, httpdto.FromMessageSlice(items))
}
