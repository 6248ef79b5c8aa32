package conversation

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusClosed Status = "CLOSED"
)

// Conversation represents the conversations table
type Conversation struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Status         Status     `gorm:"type:varchar(16);not null;index"`
	ParticipantKey string     `gorm:"not null;index"`
	CreatedAt      time.Time  `gorm:"not null;index"`
	ClosedAt       *time.Time

	// Relationships
	Participants []Participant `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
}

// Participant represents the conversation_participants table. Position keeps
// the participant order the conversation was created with.
type Participant struct {
	ConversationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position       int       `gorm:"not null"`
}

func (Conversation) TableName() string {
	return "conversations"
}

func (Participant) TableName() string {
	return "conversation_participants"
}

// New opens an ACTIVE conversation between participants, in the given order.
func New(participants []uuid.UUID, now time.Time) Conversation {
	id := uuid.New()
	return Conversation{
		ID:             id,
		Status:         StatusActive,
		ParticipantKey: KeyFor(participants...),
		CreatedAt:      now,
		Participants: lo.Map(participants, func(userID uuid.UUID, i int) Participant {
			return Participant{ConversationID: id, UserID: userID, Position: i}
		}),
	}
}

// KeyFor identifies a participant set regardless of order, so {a, b} and
// {b, a} share a key.
func KeyFor(ids ...uuid.UUID) string {
	parts := lo.Uniq(lo.Map(ids, func(id uuid.UUID, _ int) string { return id.String() }))
	sort.Strings(parts)
	return strings.Join(parts, ":")
}

func (c Conversation) ParticipantIDs() []uuid.UUID {
	ordered := make([]Participant, len(c.Participants))
	copy(ordered, c.Participants)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })
	return lo.Map(ordered, func(p Participant, _ int) uuid.UUID { return p.UserID })
}

func (c Conversation) HasParticipant(userID uuid.UUID) bool {
	return lo.ContainsBy(c.Participants, func(p Participant) bool { return p.UserID == userID })
}

func (c Conversation) IsActive() bool { return c.Status == StatusActive }
func (c Conversation) IsClosed() bool { return c.Status == StatusClosed }
