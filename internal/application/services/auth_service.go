package services

import (
	"context"

	"github.com/zerobase/storereservation/internal/domain/entities"
	"github.com/zerobase/storereservation/internal/domain/repositories"
	"github.com/zerobase/storereservation/internal/infrastructure/tokens"
	apperrors "github.com/zerobase/storereservation/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// AuthService verifies credentials and issues access tokens.
type AuthService struct {
	repo   repositories.UserRepository
	issuer *tokens.Issuer
}

// NewAuthService creates a new auth service.
func NewAuthService(repo repositories.UserRepository, issuer *tokens.Issuer) *AuthService {
	return &AuthService{repo: repo, issuer: issuer}
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string         `json:"token"`
	User  *entities.User `json:"user"`
}

// Login authenticates a username/password pair and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.NewValidationError(apperrors.CodeIncorrectPassword, "password is incorrect")
	}

	token, err := s.issuer.Generate(user)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to sign token", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}
