package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zerobase/storereservation/internal/application/services"
	"github.com/zerobase/storereservation/internal/domain/entities"
	"github.com/zerobase/storereservation/internal/infrastructure/tokens"
	apperrors "github.com/zerobase/storereservation/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	assert.NoError(t, err)

	user := &entities.User{
		ID:           "user-1",
		Username:     "customer1",
		PasswordHash: string(hash),
		Role:         entities.RoleCustomer,
	}

	issuer := tokens.NewIssuer("test-secret", time.Hour)

	t.Run("issues a token carrying the caller identity", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := services.NewAuthService(repo, issuer)

		repo.On("GetByUsername", mock.Anything, "customer1").Return(user, nil)

		result, err := service.Login(context.Background(), "customer1", "secret")

		assert.NoError(t, err)
		assert.Equal(t, user, result.User)

		claims, err := issuer.Parse(result.Token)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, entities.RoleCustomer, claims.Role)
	})

	t.Run("refuses a wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := services.NewAuthService(repo, issuer)

		repo.On("GetByUsername", mock.Anything, "customer1").Return(user, nil)

		_, err := service.Login(context.Background(), "customer1", "wrong")

		assert.True(t, apperrors.HasCode(err, apperrors.CodeIncorrectPassword))
	})

	t.Run("fails for an unknown username", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := services.NewAuthService(repo, issuer)

		repo.On("GetByUsername", mock.Anything, "nobody").Return(nil,
			apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "user not found"))

		_, err := service.Login(context.Background(), "nobody", "secret")

		assert.True(t, apperrors.HasCode(err, apperrors.CodeUserNotFound))
	})
}
