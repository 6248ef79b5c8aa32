package services

import (
	"context"
	"testing"
	"time"

	"clinic-chat/internal/domain/conversation"
	clinic_errors "clinic-chat/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestConversationService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("should open an ACTIVE conversation in participant order", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)
		p := f.patient(t, "Alice")
		d := f.doctor(t, "Dr X")

		conv, err := f.conversations.Create(ctx, []uuid.UUID{p.ID, d.ID})

		req.NoError(err)
		req.Equal(conversation.StatusActive, conv.Status)
		req.Nil(conv.ClosedAt)
		req.Equal([]uuid.UUID{p.ID, d.ID}, conv.ParticipantIDs())
		req.False(conv.CreatedAt.IsZero())
	})

	t.Run("should refuse a second ACTIVE conversation for the same pair", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)
		p := f.patient(t, "Alice")
		d := f.doctor(t, "Dr X")

		_, err := f.conversations.Create(ctx, []uuid.UUID{p.ID, d.ID})
		req.NoError(err)

		_, err = f.conversations.Create(ctx, []uuid.UUID{d.ID, p.ID})
		req.ErrorIs(err, clinic_errors.ErrConflict)
	})

	t.Run("should reject an empty participant list", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)

		_, err := f.conversations.Create(ctx, nil)

		req.ErrorIs(err, clinic_errors.ErrInvalidInput)
	})
}

func TestConversationService_FindActiveBetween(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	f := newFixture(t, nil)
	p := f.patient(t, "Alice")
	d := f.doctor(t, "Dr X")
	other := f.doctor(t, "Dr Y")

	_, found, err := f.conversations.FindActiveBetween(ctx, p.ID, d.ID)
	req.NoError(err)
	req.False(found)

	conv, err := f.conversations.Create(ctx, []uuid.UUID{p.ID, d.ID})
	req.NoError(err)

	got, found, err := f.conversations.FindActiveBetween(ctx, d.ID, p.ID)
	req.NoError(err)
	req.True(found)
	req.Equal(conv.ID, got.ID)

	_, found, err = f.conversations.FindActiveBetween(ctx, p.ID, other.ID)
	req.NoError(err)
	req.False(found)

	_, err = f.conversations.Close(ctx, conv.ID, p.ID)
	req.NoError(err)

	_, found, err = f.conversations.FindActiveBetween(ctx, p.ID, d.ID)
	req.NoError(err)
	req.False(found)
}

func TestConversationService_Close(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, conversation.Conversation, uuid.UUID, uuid.UUID) {
		f := newFixture(t, nil)
		p := f.patient(t, "Alice")
		d := f.doctor(t, "Dr X")
		conv, err := f.conversations.Create(ctx, []uuid.UUID{p.ID, d.ID})
		require.NoError(t, err)
		return f, conv, p.ID, d.ID
	}

	t.Run("should close when the patient participant asks", func(t *testing.T) {
		req := require.New(t)
		f, conv, patientID, _ := setup(t)

		closed, err := f.conversations.Close(ctx, conv.ID, patientID)

		req.NoError(err)
		req.Equal(conversation.StatusClosed, closed.Status)
		req.NotNil(closed.ClosedAt)
		req.False(closed.ClosedAt.Before(closed.CreatedAt))

		listed, err := f.conversations.ListByUser(ctx, patientID)
		req.NoError(err)
		req.Len(listed, 1)
		req.True(listed[0].IsClosed())
	})

	t.Run("should reject a second close", func(t *testing.T) {
		req := require.New(t)
		f, conv, patientID, _ := setup(t)

		_, err := f.conversations.Close(ctx, conv.ID, patientID)
		req.NoError(err)

		_, err = f.conversations.Close(ctx, conv.ID, patientID)
		req.ErrorIs(err, clinic_errors.ErrInvalidInput)
		req.EqualError(err, "already closed")
	})

	t.Run("should fail with not found for an unknown conversation or actor", func(t *testing.T) {
		req := require.New(t)
		f, conv, patientID, _ := setup(t)

		_, err := f.conversations.Close(ctx, uuid.New(), patientID)
		req.ErrorIs(err, clinic_errors.ErrNotFound)

		_, err = f.conversations.Close(ctx, conv.ID, uuid.New())
		req.ErrorIs(err, clinic_errors.ErrNotFound)
	})

	t.Run("should forbid a non participant", func(t *testing.T) {
		req := require.New(t)
		f, conv, _, _ := setup(t)
		stranger := f.patient(t, "Bob")

		_, err := f.conversations.Close(ctx, conv.ID, stranger.ID)

		req.ErrorIs(err, clinic_errors.ErrForbidden)
		req.EqualError(err, "not a participant")
	})

	t.Run("should forbid the doctor", func(t *testing.T) {
		req := require.New(t)
		f, conv, _, doctorID := setup(t)

		_, err := f.conversations.Close(ctx, conv.ID, doctorID)

		req.ErrorIs(err, clinic_errors.ErrForbidden)
		req.EqualError(err, "only patient may close")
	})

	t.Run("should check the role before the closed state", func(t *testing.T) {
		req := require.New(t)
		f, conv, patientID, doctorID := setup(t)
		_, err := f.conversations.Close(ctx, conv.ID, patientID)
		req.NoError(err)

		_, err = f.conversations.Close(ctx, conv.ID, doctorID)

		req.ErrorIs(err, clinic_errors.ErrForbidden)
	})

	t.Run("should never record closedAt before createdAt", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)
		p := f.patient(t, "Alice")
		d := f.doctor(t, "Dr X")

		created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		readings := []time.Time{created, created.Add(-time.Minute)}
		f.conversations.now = func() time.Time {
			now := readings[0]
			readings = readings[1:]
			return now
		}

		conv, err := f.conversations.Create(ctx, []uuid.UUID{p.ID, d.ID})
		req.NoError(err)

		closed, err := f.conversations.Close(ctx, conv.ID, p.ID)
		req.NoError(err)
		req.True(closed.ClosedAt.Equal(created))
	})
}

func TestConversationService_ListByUser(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	f := newFixture(t, nil)
	f.useClock(newStepClock(time.Second).Now)

	p := f.patient(t, "Alice")
	d1 := f.doctor(t, "Dr X")
	d2 := f.doctor(t, "Dr Y")

	first, err := f.conversations.Create(ctx, []uuid.UUID{p.ID, d1.ID})
	req.NoError(err)
	second, err := f.conversations.Create(ctx, []uuid.UUID{p.ID, d2.ID})
	req.NoError(err)

	listed, err := f.conversations.ListByUser(ctx, p.ID)
	req.NoError(err)
	req.Len(listed, 2)
	req.Equal(second.ID, listed[0].ID)
	req.Equal(first.ID, listed[1].ID)

	listed, err = f.conversations.ListByUser(ctx, d1.ID)
	req.NoError(err)
	req.Len(listed, 1)
	req.Equal(first.ID, listed[0].ID)

	listed, err = f.conversations.ListByUser(ctx, uuid.New())
	req.NoError(err)
	req.Empty(listed)
}
