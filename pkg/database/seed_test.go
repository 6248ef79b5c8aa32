package database

import (
	"context"
	"testing"

	"clinic-chat/internal/domain/conversation"
	"clinic-chat/internal/repository"
	"clinic-chat/internal/repository/memory"
	"clinic-chat/internal/services"
	"clinic-chat/pkg/logger"

	"github.com/stretchr/testify/require"
)

func newSeedServices(store *memory.Store) Services {
	l := logger.NewNop()
	users := services.NewUserService(store, l)
	conversations := services.NewConversationService(store, users, l)
	return Services{
		Users:         users,
		Conversations: conversations,
		Messages:      services.NewMessageService(store, users, conversations, l),
		Ratings:       services.NewRatingService(store, users, conversations, nil, l),
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("should play one finished and one open consultation", func(t *testing.T) {
		req := require.New(t)
		svc := newSeedServices(memory.NewStore())

		result, err := Seed(ctx, svc, nil)

		req.NoError(err)
		req.Len(result.Doctors, 3)
		req.Len(result.Patients, 2)
		req.Len(result.Messages, 4)
		req.Len(result.Ratings, 1)
		req.Len(result.Conversations, 2)
		req.Equal(conversation.StatusClosed, result.Conversations[0].Status)
		req.Equal(conversation.StatusActive, result.Conversations[1].Status)

		summary, err := svc.Ratings.DoctorSummary(ctx, result.Doctors[0].ID)
		req.NoError(err)
		req.Equal(5.0, summary.AverageScore)
	})

	t.Run("should need a doctor and a patient", func(t *testing.T) {
		_, err := Seed(ctx, newSeedServices(memory.NewStore()), &SeedConfig{Doctors: []string{"Dr X"}})
		require.Error(t, err)
	})

	t.Run("should clear everything before reseeding", func(t *testing.T) {
		req := require.New(t)
		store := memory.NewStore()
		svc := newSeedServices(store)
		_, err := Seed(ctx, svc, nil)
		req.NoError(err)

		result, err := ClearAndReseed(ctx, store, svc, nil)
		req.NoError(err)

		users, err := svc.Users.ListAll(ctx)
		req.NoError(err)
		req.Len(users, 5)

		req.NoError(TruncateAll(ctx, store))
		_ = store.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
			count, err := repos.Messages.CountByConversationID(ctx, result.Conversations[0].ID)
			req.NoError(err)
			req.Zero(count)
			return nil
		})
	})
}
