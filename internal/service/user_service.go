package service

import (
	"context"
	"fmt"

	"packable/internal/auth"
	"packable/internal/db"
	"packable/internal/model"
	"packable/internal/repository"
)

// UserUpdate holds the fields of a partial user update. Nil fields are left unchanged.
type UserUpdate struct {
	Password  *string
	FirstName *string
	LastName  *string
	Email     *string
	IsAdmin   *bool
}

// UserService exposes domain operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, username string) (*model.UserDetail, error)
	CreateUser(ctx context.Context, input NewUser) (*model.User, error)
	UpdateUser(ctx context.Context, username string, update UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, username string) error
}

type userService struct {
	repo     repository.UserRepository
	listRepo repository.ListRepository
	hasher   *auth.Hasher
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository, listRepo repository.ListRepository, hasher *auth.Hasher) UserService {
	return &userService{repo: repo, listRepo: listRepo, hasher: hasher}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, username string) (*model.UserDetail, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, storeErr(err, noUser(username), "find user")
	}

	lists, err := s.listRepo.ListByUsername(ctx, username)
	if err != nil {
		return nil, storeErr(err, noUser(username), "list user lists")
	}
	if lists == nil {
		lists = []model.List{}
	}
	return &model.UserDetail{User: *user, Lists: lists}, nil
}

// CreateUser creates a user; unlike registration the caller may grant admin.
func (s *userService) CreateUser(ctx context.Context, input NewUser) (*model.User, error) {
	return createUser(ctx, s.repo, s.hasher, input)
}

func (s *userService) UpdateUser(ctx context.Context, username string, update UserUpdate) (*model.User, error) {
	var fields []db.Field
	if update.Password != nil {
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return nil, err
		}
		fields = append(fields, db.Field{Name: "password", Value: hash})
	}
	if update.FirstName != nil {
		fields = append(fields, db.Field{Name: "first_name", Value: *update.FirstName})
	}
	if update.LastName != nil {
		fields = append(fields, db.Field{Name: "last_name", Value: *update.LastName})
	}
	if update.Email != nil {
		fields = append(fields, db.Field{Name: "email", Value: *update.Email})
	}
	if update.IsAdmin != nil {
		fields = append(fields, db.Field{Name: "is_admin", Value: *update.IsAdmin})
	}

	set, err := db.PartialUpdate(fields, repository.UserColumns)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Update(ctx, username, set)
	if err != nil {
		return nil, storeErr(err, noUser(username), "update user")
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, username string) error {
	return storeErr(s.repo.Delete(ctx, username), noUser(username), "delete user")
}
