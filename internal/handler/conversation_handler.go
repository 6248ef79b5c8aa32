package handler

import (
	"net/http"

	"clinic-chat/internal/services"
	"clinic-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	service *services.ConversationService
}

func NewConversationHandler(service *services.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: service}
}

func (h *ConversationHandler) ListByUser(c *gin.Context) {
	userID, valid := uuidParam(c, "userId")
	if !valid {
		return
	}

	items, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, httpdto.FromConversationSlice(items))
}

func (h *ConversationHandler) Close(c *gin.Context) {
	conversationID, valid := uuidParam(c, "conversationId")
	if !valid {
		return
	}
	actorID, valid := parseUUID(c, c.Query("actorId"), "actorId")
	if !valid {
		return
	}

	ctx := c.Request.Context()
	if err := services.AuthorizeActor(ctx, actorID); err != nil {
		_ = c.Error(err)
		return
	}

	closed, err := h.service.Close(ctx, conversationID, actorID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, httpdto.FromConversation(closed))
}
