package memory

import (
	"context"
	"sort"

	"clinic-chat/internal/domain/conversation"
	"clinic-chat/internal/domain/message"
	"clinic-chat/internal/domain/rating"
	"clinic-chat/internal/domain/user"
	clinic_errors "clinic-chat/pkg/errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type userRepository struct {
	store *Store
}

func (r *userRepository) Save(_ context.Context, u *user.User) error {
	st := r.store.state
	if _, exists := st.users[u.ID]; exists {
		return clinic_errors.Conflict("user already exists")
	}
	st.users[u.ID] = cloneUser(*u)
	st.userOrder = append(st.userOrder, u.ID)
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := r.store.state.users[id]
	if !ok {
		return user.User{}, clinic_errors.NotFound("user not found")
	}
	return cloneUser(u), nil
}

func (r *userRepository) FindAll(_ context.Context) ([]user.User, error) {
	return r.filter(func(user.User) bool { return true }), nil
}

func (r *userRepository) FindByRole(_ context.Context, role user.Role) ([]user.User, error) {
	return r.filter(func(u user.User) bool { return u.HasRole(role) }), nil
}

func (r *userRepository) FindByNameAndRole(_ context.Context, name string, role user.Role) ([]user.User, error) {
	return r.filter(func(u user.User) bool { return u.Name == name && u.HasRole(role) }), nil
}

func (r *userRepository) DeleteAll(_ context.Context) error {
	st := r.store.state
	st.users = map[uuid.UUID]user.User{}
	st.userOrder = nil
	return nil
}

func (r *userRepository) filter(keep func(user.User) bool) []user.User {
	st := r.store.state
	out := []user.User{}
	for _, id := range st.userOrder {
		if u := st.users[id]; keep(u) {
			out = append(out, cloneUser(u))
		}
	}
	return out
}

type conversationRepository struct {
	store *Store
}

func (r *conversationRepository) Save(_ context.Context, c *conversation.Conversation) error {
	st := r.store.state
	if c.IsActive() {
		for id, other := range st.conversations {
			if id != c.ID && other.IsActive() && other.ParticipantKey == c.ParticipantKey {
				return clinic_errors.Conflict("active conversation for these participants already exists")
			}
		}
	}

	existing, ok := st.conversations[c.ID]
	if !ok {
		st.conversations[c.ID] = cloneConversation(*c)
		st.convOrder = append(st.convOrder, c.ID)
		return nil
	}
	existing.Status = c.Status
	existing.ClosedAt = c.ClosedAt
	st.conversations[c.ID] = cloneConversation(existing)
	return nil
}

func (r *conversationRepository) FindByID(_ context.Context, id uuid.UUID) (conversation.Conversation, error) {
	c, ok := r.store.state.conversations[id]
	if !ok {
		return conversation.Conversation{}, clinic_errors.NotFound("conversation not found")
	}
	return cloneConversation(c), nil
}

func (r *conversationRepository) FindAllByUserID(_ context.Context, userID uuid.UUID) ([]conversation.Conversation, error) {
	return r.newestFirst(func(c conversation.Conversation) bool { return c.HasParticipant(userID) }), nil
}

func (r *conversationRepository) FindActiveBetween(_ context.Context, userA, userB uuid.UUID) (conversation.Conversation, error) {
	key := conversation.KeyFor(userA, userB)
	found := r.newestFirst(func(c conversation.Conversation) bool {
		return c.IsActive() && c.ParticipantKey == key
	})
	if len(found) == 0 {
		return conversation.Conversation{}, clinic_errors.NotFound("active conversation not found")
	}
	return found[0], nil
}

func (r *conversationRepository) DeleteAll(_ context.Context) error {
	st := r.store.state
	st.conversations = map[uuid.UUID]conversation.Conversation{}
	st.convOrder = nil
	return nil
}

// newestFirst walks conversations by descending creation time, falling back
// to reverse insertion order for equal timestamps.
func (r *conversationRepository) newestFirst(keep func(conversation.Conversation) bool) []conversation.Conversation {
	st := r.store.state
	out := []conversation.Conversation{}
	for i := len(st.convOrder) - 1; i >= 0; i-- {
		if c := st.conversations[st.convOrder[i]]; keep(c) {
			out = append(out, cloneConversation(c))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type messageRepository struct {
	store *Store
}

func (r *messageRepository) Save(_ context.Context, m *message.Message, conversationID uuid.UUID) error {
	st := r.store.state
	if _, ok := st.conversations[conversationID]; !ok {
		return clinic_errors.NotFound("conversation not found")
	}
	st.nextSeq++
	m.ConversationID = conversationID
	m.Seq = st.nextSeq
	st.messages = append(st.messages, *m)
	return nil
}

func (r *messageRepository) FindByConversationID(_ context.Context, conversationID uuid.UUID) ([]message.Message, error) {
	out := lo.Filter(r.store.state.messages, func(m message.Message, _ int) bool {
		return m.ConversationID == conversationID
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Seq < out[j].Seq
	})
	return out, nil
}

func (r *messageRepository) CountByConversationID(_ context.Context, conversationID uuid.UUID) (int64, error) {
	return int64(lo.CountBy(r.store.state.messages, func(m message.Message) bool {
		return m.ConversationID == conversationID
	})), nil
}

func (r *messageRepository) DeleteAll(_ context.Context) error {
	r.store.state.messages = nil
	return nil
}

type ratingRepository struct {
	store *Store
}

func (r *ratingRepository) Save(_ context.Context, rt *rating.Rating) error {
	st := r.store.state
	duplicate := lo.ContainsBy(st.ratings, func(other rating.Rating) bool {
		return other.ConversationID == rt.ConversationID && other.PatientID == rt.PatientID
	})
	if duplicate {
		return clinic_errors.Conflict("rating for this conversation already exists")
	}
	st.ratings = append(st.ratings, *rt)
	return nil
}

func (r *ratingRepository) FindByConversationAndPatient(_ context.Context, conversationID, patientID uuid.UUID) (rating.Rating, error) {
	rt, ok := lo.Find(r.store.state.ratings, func(rt rating.Rating) bool {
		return rt.ConversationID == conversationID && rt.PatientID == patientID
	})
	if !ok {
		return rating.Rating{}, clinic_errors.NotFound("rating not found")
	}
	return rt, nil
}

func (r *ratingRepository) AverageForDoctor(_ context.Context, doctorID uuid.UUID) (float64, bool, error) {
	scores := r.scoresFor(doctorID)
	if len(scores) == 0 {
		return 0, false, nil
	}
	return float64(lo.Sum(scores)) / float64(len(scores)), true, nil
}

func (r *ratingRepository) CountForDoctor(_ context.Context, doctorID uuid.UUID) (int64, error) {
	return int64(len(r.scoresFor(doctorID))), nil
}

func (r *ratingRepository) DeleteAll(_ context.Context) error {
	r.store.state.ratings = nil
	return nil
}

func (r *ratingRepository) scoresFor(doctorID uuid.UUID) []int {
	return lo.FilterMap(r.store.state.ratings, func(rt rating.Rating, _ int) (int, bool) {
		return rt.Score, rt.DoctorID == doctorID
	})
}
