package repository

import (
	"context"

	"clinic-chat/internal/domain/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Save(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).Create(u)
	return translateWriteError(res.Error, "user")
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Preload("RoleAssignments").
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return user.User{}, translateReadError(err, "user")
	}
	return u, nil
}

func (r *PostgresUserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	var users []user.User
	err := r.db.WithContext(ctx).
		Preload("RoleAssignments").
		Order("created_at ASC, id ASC").
		Find(&users).Error
	if err != nil {
		return nil, translateReadError(err, "users")
	}
	return users, nil
}

func (r *PostgresUserRepository) FindByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	var users []user.User
	err := r.db.WithContext(ctx).
		Preload("RoleAssignments").
		Where("id IN (?)", r.idsWithRole(role)).
		Order("created_at ASC, id ASC").
		Find(&users).Error
	if err != nil {
		return nil, translateReadError(err, "users")
	}
	return users, nil
}

func (r *PostgresUserRepository) FindByNameAndRole(ctx context.Context, name string, role user.Role) ([]user.User, error) {
	var users []user.User
	err := r.db.WithContext(ctx).
		Preload("RoleAssignments").
		Where("name = ? AND id IN (?)", name, r.idsWithRole(role)).
		Order("created_at ASC, id ASC").
		Find(&users).Error
	if err != nil {
		return nil, translateReadError(err, "users")
	}
	return users, nil
}

func (r *PostgresUserRepository) DeleteAll(ctx context.Context) error {
	db := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := db.Delete(&user.RoleAssignment{}).Error; err != nil {
		return err
	}
	return db.Delete(&user.User{}).Error
}

func (r *PostgresUserRepository) idsWithRole(role user.Role) *gorm.DB {
	return r.db.Model(&user.RoleAssignment{}).
		Select("user_id").
		Where("role = ?", role)
}
