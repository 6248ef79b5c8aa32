package repository

import (
	"context"
	"database/sql"

	"clinic-chat/internal/domain/rating"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresRatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &PostgresRatingRepository{db: db}
}

func (r *PostgresRatingRepository) Save(ctx context.Context, rt *rating.Rating) error {
	res := r.db.WithContext(ctx).Create(rt)
	return translateWriteError(res.Error, "rating for this conversation")
}

func (r *PostgresRatingRepository) FindByConversationAndPatient(ctx context.Context, conversationID, patientID uuid.UUID) (rating.Rating, error) {
	var rt rating.Rating
	err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND patient_id = ?", conversationID, patientID).
		First(&rt).Error
	if err != nil {
		return rating.Rating{}, translateReadError(err, "rating")
	}
	return rt, nil
}

func (r *PostgresRatingRepository) AverageForDoctor(ctx context.Context, doctorID uuid.UUID) (float64, bool, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).
		Model(&rating.Rating{}).
		Select("AVG(score)::float8").
		Where("doctor_id = ?", doctorID).
		Scan(&avg).Error
	if err != nil {
		return 0, false, translateReadError(err, "rating average")
	}
	return avg.Float64, avg.Valid, nil
}

func (r *PostgresRatingRepository) CountForDoctor(ctx context.Context, doctorID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&rating.Rating{}).
		Where("doctor_id = ?", doctorID).
		Count(&total).Error
	if err != nil {
		return 0, translateReadError(err, "rating count")
	}
	return total, nil
}

func (r *PostgresRatingRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&rating.Rating{}).Error
}
