package services

import (
	"context"
	"sort"
	"time"

	"clinic-chat/internal/domain/rating"
	"clinic-chat/internal/domain/user"
	"clinic-chat/internal/repository"
	clinic_errors "clinic-chat/pkg/errors"
	"clinic-chat/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate go run go.uber.org/mock/mockgen -source=rating_service.go -destination=../mocks/mock_summary_cache.go -package=mocks

// SummaryCache stores computed doctor summaries. A miss is (zero, false, nil).
type SummaryCache interface {
	GetDoctorSummary(ctx context.Context, doctorID uuid.UUID) (rating.DoctorSummary, bool, error)
	SetDoctorSummary(ctx context.Context, summary rating.DoctorSummary) error
	InvalidateDoctorSummary(ctx context.Context, doctorID uuid.UUID) error
}

// RatingService is the rating ledger. A patient rates a doctor at most once
// per closed conversation.
type RatingService struct {
	uow           repository.UnitOfWork
	users         *UserService
	conversations *ConversationService
	cache         SummaryCache
	logger        *logger.Logger
	now           func() time.Time
}

func NewRatingService(uow repository.UnitOfWork, users *UserService, conversations *ConversationService, cache SummaryCache, l *logger.Logger) *RatingService {
	return &RatingService{
		uow:           uow,
		users:         users,
		conversations: conversations,
		cache:         cache,
		logger:        l,
		now:           utcNow,
	}
}

func (s *RatingService) Create(ctx context.Context, conversationID, patientID, doctorID uuid.UUID, score int) (rating.Rating, error) {
	if !rating.ValidScore(score) {
		return rating.Rating{}, clinic_errors.BadRequest("score must be between 1 and 5")
	}

	var rt rating.Rating
	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		conv, err := s.conversations.get(ctx, repos, conversationID)
		if err != nil {
			return err
		}
		patient, err := s.users.get(ctx, repos, patientID, "patient not found")
		if err != nil {
			return err
		}
		doctor, err := s.users.get(ctx, repos, doctorID, "doctor not found")
		if err != nil {
			return err
		}

		if !patient.IsPatient() {
			return clinic_errors.Forbidden("only a patient can give a score")
		}
		if !doctor.IsDoctor() {
			return clinic_errors.BadRequest("the target user is not a doctor")
		}
		if !conv.HasParticipant(patientID) || !conv.HasParticipant(doctorID) {
			return clinic_errors.Forbidden("patient and doctor must be participants of the conversation")
		}
		if !conv.IsClosed() {
			return clinic_errors.BadRequest("messaging not ended")
		}

		_, err = repos.Ratings.FindByConversationAndPatient(ctx, conversationID, patientID)
		switch {
		case err == nil:
			return clinic_errors.Conflict("conversation already rated by this patient")
		case !isNotFound(err):
			return err
		}

		rt = rating.New(conversationID, patientID, doctorID, score, s.now())
		return repos.Ratings.Save(ctx, &rt)
	})
	if err != nil {
		return rating.Rating{}, err
	}

	s.invalidate(ctx, doctorID)
	s.logger.InfoCtx(ctx, "rating recorded",
		zap.String("conversation_id", conversationID.String()),
		zap.String("doctor_id", doctorID.String()),
		zap.Int("score", score))
	return rt, nil
}

// DoctorSummary returns the doctor's average score rounded half up to two
// decimals, and the number of ratings. No ratings gives {0, 0}.
func (s *RatingService) DoctorSummary(ctx context.Context, doctorID uuid.UUID) (rating.DoctorSummary, error) {
	if cached, ok := s.cached(ctx, doctorID); ok {
		return cached, nil
	}

	var summary rating.DoctorSummary
	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		doctor, err := s.users.get(ctx, repos, doctorID, "doctor not found")
		if err != nil {
			return err
		}
		summary, err = s.summarize(ctx, repos, doctor)
		return err
	})
	if err != nil {
		return rating.DoctorSummary{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetDoctorSummary(ctx, summary); err != nil {
			s.logger.ErrorCtx(ctx, "failed to cache doctor summary", zap.Error(err))
		}
	}
	return summary, nil
}

// ListDoctorsWithRatings summarises every doctor, best rated first. Doctors
// with equal averages keep directory order.
func (s *RatingService) ListDoctorsWithRatings(ctx context.Context) ([]rating.DoctorSummary, error) {
	summaries := []rating.DoctorSummary{}
	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		doctors, err := repos.Users.FindByRole(ctx, user.RoleDoctor)
		if err != nil {
			return err
		}
		for _, d := range doctors {
			summary, err := s.summarize(ctx, repos, d)
			if err != nil {
				return err
			}
			summaries = append(summaries, summary)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].AverageScore > summaries[j].AverageScore
	})
	return summaries, nil
}

func (s *RatingService) summarize(ctx context.Context, repos repository.Repositories, doctor user.User) (rating.DoctorSummary, error) {
	avg, ok, err := repos.Ratings.AverageForDoctor(ctx, doctor.ID)
	if err != nil {
		return rating.DoctorSummary{}, err
	}
	count, err := repos.Ratings.CountForDoctor(ctx, doctor.ID)
	if err != nil {
		return rating.DoctorSummary{}, err
	}

	summary := rating.DoctorSummary{DoctorID: doctor.ID, Name: doctor.Name, Count: count}
	if ok {
		summary.AverageScore = RoundHalfUp(avg, 2)
	}
	return summary, nil
}

func (s *RatingService) cached(ctx context.Context, doctorID uuid.UUID) (rating.DoctorSummary, bool) {
	if s.cache == nil {
		return rating.DoctorSummary{}, false
	}
	summary, ok, err := s.cache.GetDoctorSummary(ctx, doctorID)
	if err != nil {
		s.logger.ErrorCtx(ctx, "failed to read doctor summary cache", zap.Error(err))
		return rating.DoctorSummary{}, false
	}
	return summary, ok
}

func (s *RatingService) invalidate(ctx context.Context, doctorID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDoctorSummary(ctx, doctorID); err != nil {
		s.logger.ErrorCtx(ctx, "failed to invalidate doctor summary cache", zap.Error(err))
	}
}

// RoundHalfUp rounds v to places decimals, halves away from zero. The float is
// read through its shortest decimal form, so 4.665 rounds to 4.67.
func RoundHalfUp(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
