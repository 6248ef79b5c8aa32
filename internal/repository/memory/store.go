// Package memory is an in-process implementation of the repository contracts.
// A Store serialises units of work and rolls a failed one back by restoring
// the state captured when it started.
package memory

import (
	"context"
	"sync"

	"clinic-chat/internal/domain/conversation"
	"clinic-chat/internal/domain/message"
	"clinic-chat/internal/domain/rating"
	"clinic-chat/internal/domain/user"
	"clinic-chat/internal/repository"

	"github.com/google/uuid"
)

type Store struct {
	mu    sync.Mutex
	state *state
}

type state struct {
	users         map[uuid.UUID]user.User
	userOrder     []uuid.UUID
	conversations map[uuid.UUID]conversation.Conversation
	convOrder     []uuid.UUID
	messages      []message.Message
	nextSeq       int64
	ratings       []rating.Rating
}

func NewStore() *Store {
	return &Store{state: newState()}
}

func newState() *state {
	return &state{
		users:         map[uuid.UUID]user.User{},
		conversations: map[uuid.UUID]conversation.Conversation{},
	}
}

func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(ctx, s.repositories()); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) repositories() repository.Repositories {
	return repository.Repositories{
		Users:         &userRepository{store: s},
		Conversations: &conversationRepository{store: s},
		Messages:      &messageRepository{store: s},
		Ratings:       &ratingRepository{store: s},
	}
}

func (st *state) clone() *state {
	c := newState()
	for id, u := range st.users {
		c.users[id] = cloneUser(u)
	}
	for id, conv := range st.conversations {
		c.conversations[id] = cloneConversation(conv)
	}
	c.userOrder = append([]uuid.UUID(nil), st.userOrder...)
	c.convOrder = append([]uuid.UUID(nil), st.convOrder...)
	c.messages = append([]message.Message(nil), st.messages...)
	c.ratings = append([]rating.Rating(nil), st.ratings...)
	c.nextSeq = st.nextSeq
	return c
}

func cloneUser(u user.User) user.User {
	u.RoleAssignments = append([]user.RoleAssignment(nil), u.RoleAssignments...)
	return u
}

func cloneConversation(c conversation.Conversation) conversation.Conversation {
	c.Participants = append([]conversation.Participant(nil), c.Participants...)
	if c.ClosedAt != nil {
		closedAt := *c.ClosedAt
		c.ClosedAt = &closedAt
	}
	return c
}
