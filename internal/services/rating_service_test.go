package services

import (
	"context"
	"errors"
	"testing"

	"clinic-chat/internal/domain/rating"
	"clinic-chat/internal/domain/user"
	"clinic-chat/internal/mocks"
	clinic_errors "clinic-chat/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// consult plays one whole consultation up to the close and returns the
// closed conversation id.
func consult(t *testing.T, f *fixture, p, d user.User) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	first, err := f.messages.SendFirst(ctx, d.Name, p.ID, "hello")
	require.NoError(t, err)
	_, err = f.conversations.Close(ctx, first.ConversationID, p.ID)
	require.NoError(t, err)
	return first.ConversationID
}

func TestRatingService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("should record a rating for a closed conversation", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)
		p := f.patient(t, "Alice")
		d := f.doctor(t, "Dr X")
		convID := consult(t, f, p, d)

		rt, err := f.ratings.Create(ctx, convID, p.ID, d.ID, 4)

		req.NoError(err)
		req.Equal(convID, rt.ConversationID)
		req.Equal(p.ID, rt.PatientID)
		req.Equal(d.ID, rt.DoctorID)
		req.Equal(4, rt.Score)
	})

	t.Run("should reject an out of range score before any lookup", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)

		for _, score := range []int{0, 6, -1} {
			_, err := f.ratings.Create(ctx, uuid.New(), uuid.New(), uuid.New(), score)
			req.ErrorIs(err, clinic_errors.ErrInvalidInput)
		}
	})

	t.Run("should fail with not found for unknown parties", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)
		p := f.patient(t, "Alice")
		d := f.doctor(t, "Dr X")
		convID := consult(t, f, p, d)

		_, err := f.ratings.Create(ctx, uuid.New(), p.ID, d.ID, 5)
		req.ErrorIs(err, clinic_errors.ErrNotFound)
		_, err = f.ratings.Create(ctx, convID, uuid.New(), d.ID, 5)
		req.ErrorIs(err, clinic_errors.ErrNotFound)
		_, err = f.ratings.Create(ctx, convID, p.ID, uuid.New(), 5)
		req.ErrorIs(err, clinic_errors.ErrNotFound)
	})

	t.Run("should check roles", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)
		p := f.patient(t, "Alice")
		d := f.doctor(t, "Dr X")
		convID := consult(t, f, p, d)

		_, err := f.ratings.Create(ctx, convID, d.ID, d.ID, 5)
		req.ErrorIs(err, clinic_errors.ErrForbidden)

		_, err = f.ratings.Create(ctx, convID, p.ID, p.ID, 5)
		req.ErrorIs(err, clinic_errors.ErrInvalidInput)
	})

	t.Run("should forbid parties outside the conversation", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)
		p := f.patient(t, "Alice")
		d := f.doctor(t, "Dr X")
		otherPatient := f.patient(t, "Bob")
		otherDoctor := f.doctor(t, "Dr Y")
		convID := consult(t, f, p, d)

		_, err := f.ratings.Create(ctx, convID, otherPatient.ID, d.ID, 5)
		req.ErrorIs(err, clinic_errors.ErrForbidden)

		_, err = f.ratings.Create(ctx, convID, p.ID, otherDoctor.ID, 5)
		req.ErrorIs(err, clinic_errors.ErrForbidden)
	})

	t.Run("should refuse to rate an ACTIVE conversation", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)
		p := f.patient(t, "Alice")
		d := f.doctor(t, "Dr X")
		first, err := f.messages.SendFirst(ctx, "Dr X", p.ID, "hello")
		req.NoError(err)

		_, err = f.ratings.Create(ctx, first.ConversationID, p.ID, d.ID, 5)

		req.ErrorIs(err, clinic_errors.ErrInvalidInput)
		req.EqualError(err, "messaging not ended")
	})

	t.Run("should allow one rating per conversation and patient", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)
		p := f.patient(t, "Alice")
		d := f.doctor(t, "Dr X")
		convID := consult(t, f, p, d)

		_, err := f.ratings.Create(ctx, convID, p.ID, d.ID, 5)
		req.NoError(err)

		_, err = f.ratings.Create(ctx, convID, p.ID, d.ID, 1)
		req.ErrorIs(err, clinic_errors.ErrConflict)

		summary, err := f.ratings.DoctorSummary(ctx, d.ID)
		req.NoError(err)
		req.Equal(int64(1), summary.Count)
		req.Equal(5.0, summary.AverageScore)
	})
}

func TestRatingService_DoctorSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("should report zero for a doctor without ratings", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)
		d := f.doctor(t, "Dr X")

		summary, err := f.ratings.DoctorSummary(ctx, d.ID)

		req.NoError(err)
		req.Equal(0.0, summary.AverageScore)
		req.Equal(int64(0), summary.Count)
	})

	t.Run("should fail with not found for an unknown doctor", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)

		_, err := f.ratings.DoctorSummary(ctx, uuid.New())

		req.ErrorIs(err, clinic_errors.ErrNotFound)
	})

	t.Run("should round the average half up to two decimals", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)
		p := f.patient(t, "Alice")
		d := f.doctor(t, "Dr X")

		for _, score := range []int{5, 5, 4} {
			convID := consult(t, f, p, d)
			_, err := f.ratings.Create(ctx, convID, p.ID, d.ID, score)
			req.NoError(err)
		}

		summary, err := f.ratings.DoctorSummary(ctx, d.ID)
		req.NoError(err)
		req.Equal(4.67, summary.AverageScore)
		req.Equal(int64(3), summary.Count)
	})
}

func TestRoundHalfUp(t *testing.T) {
	req := require.New(t)

	req.Equal(4.67, RoundHalfUp(4.6666667, 2))
	req.Equal(4.67, RoundHalfUp(14.0/3.0, 2))
	req.Equal(4.67, RoundHalfUp(4.665, 2))
	req.Equal(2.5, RoundHalfUp(2.5, 2))
	req.Equal(3.0, RoundHalfUp(2.995, 2))
	req.Equal(0.0, RoundHalfUp(0, 2))
}

func TestRatingService_ListDoctorsWithRatings(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	f := newFixture(t, nil)
	p := f.patient(t, "Alice")
	low := f.doctor(t, "Dr Low")
	unratedA := f.doctor(t, "Dr A")
	high := f.doctor(t, "Dr High")
	unratedB := f.doctor(t, "Dr B")

	for _, tc := range []struct {
		doctor user.User
		score  int
	}{{low, 2}, {high, 5}} {
		convID := consult(t, f, p, tc.doctor)
		_, err := f.ratings.Create(ctx, convID, p.ID, tc.doctor.ID, tc.score)
		req.NoError(err)
	}

	listed, err := f.ratings.ListDoctorsWithRatings(ctx)
	req.NoError(err)
	req.Len(listed, 4)

	order := make([]uuid.UUID, 0, len(listed))
	for _, s := range listed {
		order = append(order, s.DoctorID)
	}
	req.Equal([]uuid.UUID{high.ID, low.ID, unratedA.ID, unratedB.ID}, order)
	req.Equal("Dr High", listed[0].Name)
	req.Equal(int64(1), listed[0].Count)
	req.Equal(int64(0), listed[3].Count)
}

func TestRatingService_SummaryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("should serve a cached summary without touching the store", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockSummaryCache(ctrl)
		f := newFixture(t, cache)

		doctorID := uuid.New()
		cached := rating.DoctorSummary{DoctorID: doctorID, AverageScore: 3.5, Count: 2}
		cache.EXPECT().GetDoctorSummary(gomock.Any(), doctorID).Return(cached, true, nil).Times(1)

		summary, err := f.ratings.DoctorSummary(ctx, doctorID)

		req.NoError(err)
		req.Equal(cached, summary)
	})

	t.Run("should fill the cache on a miss", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockSummaryCache(ctrl)
		f := newFixture(t, cache)
		d := f.doctor(t, "Dr X")

		cache.EXPECT().GetDoctorSummary(gomock.Any(), d.ID).Return(rating.DoctorSummary{}, false, nil)
		cache.EXPECT().SetDoctorSummary(gomock.Any(), rating.DoctorSummary{DoctorID: d.ID, Name: "Dr X"}).Return(nil)

		summary, err := f.ratings.DoctorSummary(ctx, d.ID)

		req.NoError(err)
		req.Equal(int64(0), summary.Count)
	})

	t.Run("should fall back to the store when the cache fails", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockSummaryCache(ctrl)
		f := newFixture(t, cache)
		d := f.doctor(t, "Dr X")

		cache.EXPECT().GetDoctorSummary(gomock.Any(), d.ID).Return(rating.DoctorSummary{}, false, errors.New("connection refused"))
		cache.EXPECT().SetDoctorSummary(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		summary, err := f.ratings.DoctorSummary(ctx, d.ID)

		req.NoError(err)
		req.Equal(d.ID, summary.DoctorID)
	})

	t.Run("should invalidate the doctor summary after a rating", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockSummaryCache(ctrl)
		f := newFixture(t, cache)
		p := f.patient(t, "Alice")
		d := f.doctor(t, "Dr X")
		convID := consult(t, f, p, d)

		cache.EXPECT().InvalidateDoctorSummary(gomock.Any(), d.ID).Return(nil).Times(1)

		_, err := f.ratings.Create(ctx, convID, p.ID, d.ID, 5)
		req.NoError(err)
	})

	t.Run("should not invalidate when the rating is refused", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockSummaryCache(ctrl)
		f := newFixture(t, cache)
		p := f.patient(t, "Alice")
		d := f.doctor(t, "Dr X")

		cache.EXPECT().InvalidateDoctorSummary(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.ratings.Create(ctx, uuid.New(), p.ID, d.ID, 5)
		req.ErrorIs(err, clinic_errors.ErrNotFound)
	})
}
