package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zerobase/storereservation/internal/domain/entities"
	"github.com/zerobase/storereservation/internal/domain/repositories"
	apperrors "github.com/zerobase/storereservation/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles user signup and lookup.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// CreateUserInput carries the signup parameters.
type CreateUserInput struct {
	Username string
	Password string
	Role     entities.Role
}

// CreateUser registers a new user. The username must be unique and the
// role is fixed at creation.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*entities.User, error) {
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("", "role must be CUSTOMER or PARTNER")
	}

	exists, err := s.repo.ExistsUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError(apperrors.CodeUserAlreadyExists, "username is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	now := time.Now().UTC()
	user := &entities.User{
		ID:           uuid.New().String(),
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

// GetUser retrieves a user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	return s.repo.GetByID(ctx, id)
}
