package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
)

func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

// ParseRole accepts the role names used on the wire.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// User represents the users table
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`

	// Relationships
	RoleAssignments []RoleAssignment `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// RoleAssignment represents the user_roles table
type RoleAssignment struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role   Role      `gorm:"type:varchar(16);primaryKey;index"`
}

func (User) TableName() string {
	return "users"
}

func (RoleAssignment) TableName() string {
	return "user_roles"
}

// New builds a user with a fresh id. Duplicate roles are collapsed and the
// order of first appearance is kept.
func New(name string, roles []Role, now time.Time) User {
	id := uuid.New()
	return User{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		RoleAssignments: lo.Map(lo.Uniq(roles), func(r Role, _ int) RoleAssignment {
			return RoleAssignment{UserID: id, Role: r}
		}),
	}
}

func (u User) Roles() []Role {
	return lo.Map(u.RoleAssignments, func(a RoleAssignment, _ int) Role { return a.Role })
}

func (u User) HasRole(role Role) bool {
	return lo.ContainsBy(u.RoleAssignments, func(a RoleAssignment) bool { return a.Role == role })
}

func (u User) IsPatient() bool { return u.HasRole(RolePatient) }
func (u User) IsDoctor() bool  { return u.HasRole(RoleDoctor) }
