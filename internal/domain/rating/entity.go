package rating

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinScore = 1
	MaxScore = 5
)

// Rating represents the ratings table. One row per (conversation, patient).
type Rating struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_ratings_conversation_patient,priority:1"`
	PatientID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_ratings_conversation_patient,priority:2"`
	DoctorID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Score          int       `gorm:"not null;check:chk_ratings_score,score BETWEEN 1 AND 5"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (Rating) TableName() string {
	return "ratings"
}

func New(conversationID, patientID, doctorID uuid.UUID, score int, now time.Time) Rating {
	return Rating{
		ID:             uuid.New(),
		ConversationID: conversationID,
		PatientID:      patientID,
		DoctorID:       doctorID,
		Score:          score,
		CreatedAt:      now,
	}
}

func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// DoctorSummary aggregates the ratings a doctor received.
type DoctorSummary struct {
	DoctorID     uuid.UUID `json:"doctor_id"`
	Name         string    `json:"name,omitempty"`
	AverageScore float64   `json:"average_score"`
	Count        int64     `json:"count"`
}
