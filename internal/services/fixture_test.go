package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"clinic-chat/internal/domain/user"
	"clinic-chat/internal/repository/memory"
	"clinic-chat/pkg/logger"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	store         *memory.Store
	users         *UserService
	conversations *ConversationService
	messages      *MessageService
	ratings       *RatingService
}

func newFixture(t *testing.T, cache SummaryCache) *fixture {
	t.Helper()
	store := memory.NewStore()
	l := logger.NewNop()

	users := NewUserService(store, l)
	conversations := NewConversationService(store, users, l)
	return &fixture{
		store:         store,
		users:         users,
		conversations: conversations,
		messages:      NewMessageService(store, users, conversations, l),
		ratings:       NewRatingService(store, users, conversations, cache, l),
	}
}

// useClock makes every service read time from now.
func (f *fixture) useClock(now func() time.Time) {
	f.users.now = now
	f.conversations.now = now
	f.messages.now = now
	f.ratings.now = now
}

func (f *fixture) register(t *testing.T, name string, roles ...user.Role) user.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), name, roles)
	require.NoError(t, err)
	return u
}

func (f *fixture) patient(t *testing.T, name string) user.User {
	return f.register(t, name, user.RolePatient)
}

func (f *fixture) doctor(t *testing.T, name string) user.User {
	return f.register(t, name, user.RoleDoctor)
}

// stepClock advances by step on every reading.
type stepClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{next: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), step: step}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(c.step)
	return now
}
