package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"packable/internal/auth"
	"packable/internal/db"
	apperrors "packable/internal/errors"
	"packable/internal/model"
	"packable/internal/repository"
)

// NewUser carries the fields needed to create a user.
type NewUser struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, input NewUser) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	IssueToken(user *model.User) (string, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	hasher     *auth.Hasher
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, hasher *auth.Hasher) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		hasher:     hasher,
	}
}

// Register creates a regular (non-admin) user with a hashed password.
func (s *authService) Register(ctx context.Context, input NewUser) (*model.User, error) {
	input.IsAdmin = false
	return createUser(ctx, s.userRepo, s.hasher, input)
}

// Authenticate returns the user when password matches. Unknown users and wrong passwords
// yield the same error.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.hasher.CompareDummy(password)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates a user and returns a signed token.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	return s.IssueToken(user)
}

// IssueToken signs a token for user.
func (s *authService) IssueToken(user *model.User) (string, error) {
	token, err := s.jwtService.GenerateToken(user.Username, user.IsAdmin)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

func validateNewUser(input NewUser) error {
	switch {
	case strings.TrimSpace(input.Username) == "":
		return apperrors.Validation("username is required")
	case utf8.RuneCountInString(input.Username) > 25:
		return apperrors.Validation("username must be at most 25 characters")
	case input.Password == "":
		return apperrors.Validation("password is required")
	}
	return nil
}

func createUser(ctx context.Context, repo repository.UserRepository, hasher *auth.Hasher, input NewUser) (*model.User, error) {
	if err := validateNewUser(input); err != nil {
		return nil, err
	}

	existing, err := repo.FindByUsername(ctx, input.Username)
	if err == nil && existing != nil {
		return nil, apperrors.Conflict("Duplicate username: %s", input.Username)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     input.Username,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		IsAdmin:      input.IsAdmin,
	}
	if err := repo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent insert of the same username.
		if db.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("Duplicate username: %s", input.Username)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
