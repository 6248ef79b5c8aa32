package handler

import (
	"net/http"

	"clinic-chat/internal/services"
	"clinic-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RatingHandler struct {
	service *services.RatingService
}

func NewRatingHandler(service *services.RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

func (h *RatingHandler) Create(c *gin.Context) {
	var req httpdto.CreateRatingRequest
	if !bindJSON(c, &req) {
		return
	}
	// binding already checked the uuid format
	conversationID := uuid.MustParse(req.ConversationID)
	patientID := uuid.MustParse(req.PatientID)
	doctorID := uuid.MustParse(req.DoctorID)

	ctx := c.Request.Context()
	if err := services.AuthorizeActor(ctx, patientID); err != nil {
		_ = c.Error(err)
		return
	}

	created, err := h.service.Create(ctx, conversationID, patientID, doctorID, req.Score)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusCreated, httpdto.FromRating(created))
}

func (h *RatingHandler) DoctorSummary(c *gin.Context) {
	doctorID, valid := uuidParam(c, "doctorId")
	if !valid {
		return
	}

	summary, err := h.service.DoctorSummary(c.Request.Context(), doctorID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, httpdto.FromDoctorSummary(summary))
}
