package services

import (
	"context"
	"testing"

	"clinic-chat/internal/domain/user"
	clinic_errors "clinic-chat/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("should register a user with its roles", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)

		u, err := f.users.Register(ctx, "Dr X", []user.Role{user.RoleDoctor, user.RolePatient})

		req.NoError(err)
		req.NotEqual(uuid.Nil, u.ID)
		req.Equal("Dr X", u.Name)
		req.ElementsMatch([]user.Role{user.RoleDoctor, user.RolePatient}, u.Roles())

		stored, err := f.users.Get(ctx, u.ID)
		req.NoError(err)
		req.Equal(u.ID, stored.ID)
		req.True(stored.IsDoctor())
		req.True(stored.IsPatient())
	})

	t.Run("should collapse duplicate roles", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)

		u, err := f.users.Register(ctx, "Alice", []user.Role{user.RolePatient, user.RolePatient})

		req.NoError(err)
		req.Equal([]user.Role{user.RolePatient}, u.Roles())
	})

	t.Run("should reject a blank name", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)

		_, err := f.users.Register(ctx, "   ", []user.Role{user.RolePatient})

		req.ErrorIs(err, clinic_errors.ErrInvalidInput)
	})

	t.Run("should reject an empty role set", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)

		_, err := f.users.Register(ctx, "Alice", nil)

		req.ErrorIs(err, clinic_errors.ErrInvalidInput)
	})

	t.Run("should reject an unknown role", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t, nil)

		_, err := f.users.Register(ctx, "Alice", []user.Role{"NURSE"})

		req.ErrorIs(err, clinic_errors.ErrInvalidInput)
		all, err := f.users.ListAll(ctx)
		req.NoError(err)
		req.Empty(all)
	})
}

func TestUserService_Lookups(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	alice := f.patient(t, "Alice")
	drX := f.doctor(t, "Dr X")
	both := f.register(t, "Dr X", user.RoleDoctor, user.RolePatient)

	t.Run("should fail with not found for an unknown id", func(t *testing.T) {
		req := require.New(t)

		_, err := f.users.Get(ctx, uuid.New())

		req.ErrorIs(err, clinic_errors.ErrNotFound)
	})

	t.Run("should list everyone in registration order", func(t *testing.T) {
		req := require.New(t)

		all, err := f.users.ListAll(ctx)

		req.NoError(err)
		req.Equal([]uuid.UUID{alice.ID, drX.ID, both.ID}, ids(all))
	})

	t.Run("should filter by role including users holding both roles", func(t *testing.T) {
		req := require.New(t)

		doctors, err := f.users.FindByRole(ctx, user.RoleDoctor)
		req.NoError(err)
		req.Equal([]uuid.UUID{drX.ID, both.ID}, ids(doctors))

		patients, err := f.users.FindByRole(ctx, user.RolePatient)
		req.NoError(err)
		req.Equal([]uuid.UUID{alice.ID, both.ID}, ids(patients))
	})

	t.Run("should match names exactly and case sensitively", func(t *testing.T) {
		req := require.New(t)

		found, err := f.users.FindByNameAndRole(ctx, "Dr X", user.RoleDoctor)
		req.NoError(err)
		req.Len(found, 2)

		found, err = f.users.FindByNameAndRole(ctx, "dr x", user.RoleDoctor)
		req.NoError(err)
		req.Empty(found)

		found, err = f.users.FindByNameAndRole(ctx, "Alice", user.RoleDoctor)
		req.NoError(err)
		req.Empty(found)
	})
}

func ids(users []user.User) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}
