package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	clinic_errors "clinic-chat/pkg/errors"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}

// translateWriteError maps store errors onto the domain taxonomy. what names
// the entity for the conflict message.
func translateWriteError(err error, what string) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return clinic_errors.Conflict(fmt.Sprintf("%s already exists", what))
	}
	return fmt.Errorf("save %s: %w", what, err)
}

func translateReadError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return clinic_errors.NotFound(fmt.Sprintf("%s not found", what))
	}
	return fmt.Errorf("load %s: %w", what, err)
}

// GormUnitOfWork binds a fresh set of repositories to one transaction.
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	if u.db == nil {
		return errors.New("database not initialized")
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewRepositories(tx))
	})
}

func (u *GormUnitOfWork) Ping(ctx context.Context) error {
	sqlDB, err := u.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:         NewUserRepository(db),
		Conversations: NewConversationRepository(db),
		Messages:      NewMessageRepository(db),
		Ratings:       NewRatingRepository(db),
	}
}
