package repository

import (
	"context"

	"gorm.io/gorm"

	"packable/internal/db"
	"packable/internal/model"
)

// UserColumns maps updatable user fields to their columns.
var UserColumns = map[string]string{
	"password":   "password_hash",
	"first_name": "first_name",
	"last_name":  "last_name",
	"email":      "email",
	"is_admin":   "is_admin",
}

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, username string, set db.SetClause) (*model.User, error)
	Delete(ctx context.Context, username string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, username string, set db.SetClause) (*model.User, error) {
	var user model.User
	err := updateReturning(ctx, r.db, "users", "username", username, set,
		`"username", "first_name", "last_name", "email", "is_admin"`,
		&user.Username, &user.FirstName, &user.LastName, &user.Email, &user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Delete(ctx context.Context, username string) error {
	return deleted(r.db.WithContext(ctx).Where("username = ?", username).Delete(&model.User{}))
}
