package httpdto

import (
	"time"

	"clinic-chat/internal/domain/rating"
)

type CreateRatingRequest struct {
	ConversationID string `json:"conversationId" binding:"required,uuid"`
	PatientID      string `json:"patientId" binding:"required,uuid"`
	DoctorID       string `json:"doctorId" binding:"required,uuid"`
	Score          int    `json:"score" binding:"min=1,max=5"`
}

type RatingResponse struct {
	RatingID       string    `json:"ratingId"`
	ConversationID string    `json:"conversationId"`
	PatientID      string    `json:"patientId"`
	DoctorID       string    `json:"doctorId"`
	Score          int       `json:"score"`
	CreatedAt      time.Time `json:"createdAt"`
}

type DoctorRatingResponse struct {
	DoctorID     string  `json:"doctorId"`
	AverageScore float64 `json:"averageScore"`
	RatingCount  int64   `json:"ratingCount"`
}

func FromRating(r rating.Rating) RatingResponse {
	return RatingResponse{
		RatingID:       r.ID.String(),
		ConversationID: r.ConversationID.String(),
		PatientID:      r.PatientID.String(),
		DoctorID:       r.DoctorID.String(),
		Score:          r.Score,
		CreatedAt:      r.CreatedAt,
	}
}

func FromDoctorSummary(s rating.DoctorSummary) DoctorRatingResponse {
	return DoctorRatingResponse{
		DoctorID:     s.DoctorID.String(),
		AverageScore: s.AverageScore,
		RatingCount:  s.Count,
	}
}
