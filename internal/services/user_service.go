package services

import (
	"context"
	"strings"
	"time"

	"clinic-chat/internal/domain/user"
	"clinic-chat/internal/repository"
	clinic_errors "clinic-chat/pkg/errors"
	"clinic-chat/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService is the user directory: registration and role filtered lookup.
type UserService struct {
	uow    repository.UnitOfWork
	logger *logger.Logger
	now    func() time.Time
}

func NewUserService(uow repository.UnitOfWork, l *logger.Logger) *UserService {
	return &UserService{uow: uow, logger: l, now: utcNow}
}

func (s *UserService) Register(ctx context.Context, name string, roles []user.Role) (user.User, error) {
	if strings.TrimSpace(name) == "" {
		return user.User{}, clinic_errors.InvalidInput("user name cannot be blank")
	}
	if len(roles) == 0 {
		return user.User{}, clinic_errors.InvalidInput("at least one role is required")
	}
	for _, r := range roles {
		if !r.Valid() {
			return user.User{}, clinic_errors.InvalidInput("unknown role: " + string(r))
		}
	}

	u := user.New(name, roles, s.now())
	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		return repos.Users.Save(ctx, &u)
	})
	if err != nil {
		return user.User{}, err
	}
	s.logger.InfoCtx(ctx, "user registered", zap.String("user_id", u.ID.String()), zap.Any("roles", u.Roles()))
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (user.User, error) {
	var u user.User
	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		u, err = s.get(ctx, repos, id, "user not found")
		return err
	})
	return u, err
}

func (s *UserService) ListAll(ctx context.Context) ([]user.User, error) {
	var users []user.User
	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		users, err = repos.Users.FindAll(ctx)
		return err
	})
	return users, err
}

func (s *UserService) FindByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	var users []user.User
	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		users, err = repos.Users.FindByRole(ctx, role)
		return err
	})
	return users, err
}

// FindByNameAndRole matches name exactly and case sensitively. Names are not
// unique, so any number of users may come back.
func (s *UserService) FindByNameAndRole(ctx context.Context, name string, role user.Role) ([]user.User, error) {
	var users []user.User
	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		users, err = repos.Users.FindByNameAndRole(ctx, name, role)
		return err
	})
	return users, err
}

// get resolves a user inside an already open unit of work. notFound replaces
// the store's message so callers can say which party was missing.
func (s *UserService) get(ctx context.Context, repos repository.Repositories, id uuid.UUID, notFound string) (user.User, error) {
	u, err := repos.Users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return user.User{}, clinic_errors.NotFound(notFound)
		}
		return user.User{}, err
	}
	return u, nil
}
