package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zerobase/storereservation/internal/application/services"
	"github.com/zerobase/storereservation/internal/domain/entities"
	apperrors "github.com/zerobase/storereservation/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_CreateUser(t *testing.T) {
	t.Run("creates user with a hashed password", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := services.NewUserService(repo)

		repo.On("ExistsUsername", mock.Anything, "customer1").Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Username == "customer1" &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")) == nil
		})).Return(nil)

		user, err := service.CreateUser(context.Background(), services.CreateUserInput{
			Username: "customer1",
			Password: "secret",
			Role:     entities.RoleCustomer,
		})

		assert.NoError(t, err)
		assert.NotEqual(t, "secret", user.PasswordHash)
		repo.AssertExpectations(t)
	})

	t.Run("refuses a taken username", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := services.NewUserService(repo)

		repo.On("ExistsUsername", mock.Anything, "customer1").Return(true, nil)

		_, err := service.CreateUser(context.Background(), services.CreateUserInput{
			Username: "customer1",
			Password: "secret",
			Role:     entities.RoleCustomer,
		})

		assert.True(t, apperrors.HasCode(err, apperrors.CodeUserAlreadyExists))
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("refuses an unknown role", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := services.NewUserService(repo)

		_, err := service.CreateUser(context.Background(), services.CreateUserInput{
			Username: "customer1",
			Password: "secret",
			Role:     "ADMIN",
		})

		appErr, ok := apperrors.AsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
		repo.AssertNotCalled(t, "ExistsUsername")
	})
}
