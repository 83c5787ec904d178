package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zerobase/storereservation/internal/application/services"
	"github.com/zerobase/storereservation/internal/domain/entities"
	apperrors "github.com/zerobase/storereservation/pkg/errors"
)

func newReviewService() (*services.ReviewService, *MockReviewRepository, *MockStoreRepository, *MockUserRepository, *MockReservationRepository) {
	reviewRepo := new(MockReviewRepository)
	storeRepo := new(MockStoreRepository)
	userRepo := new(MockUserRepository)
	reservationRepo := new(MockReservationRepository)
	storeService := services.NewStoreService(storeRepo, userRepo, reservationRepo)
	service := services.NewReviewService(reviewRepo, storeRepo, userRepo, reservationRepo, storeService)
	return service, reviewRepo, storeRepo, userRepo, reservationRepo
}

func TestReviewService_CreateReview(t *testing.T) {
	validInput := services.CreateReviewInput{
		StoreID: "store-1",
		UserID:  "user-1",
		Content: "Great cuts, quick seating.",
		Rating:  5,
	}

	t.Run("creates review and recomputes the rating", func(t *testing.T) {
		service, reviewRepo, storeRepo, userRepo, reservationRepo := newReviewService()

		storeRepo.On("GetByID", mock.Anything, "store-1").Return(&entities.Store{ID: "store-1"}, nil)
		userRepo.On("GetByID", mock.Anything, "user-1").Return(&entities.User{ID: "user-1"}, nil)
		reservationRepo.On("ExistsConfirmed", mock.Anything, "user-1", "store-1").Return(true, nil)
		reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.Review) bool {
			return r.StoreID == "store-1" && r.Rating == 5
		})).Return(nil)
		storeRepo.On("RecomputeRating", mock.Anything, "store-1").Return(5.0, nil)

		review, err := service.CreateReview(context.Background(), validInput)

		assert.NoError(t, err)
		assert.NotEmpty(t, review.ID)
		reviewRepo.AssertExpectations(t)
		storeRepo.AssertExpectations(t)
	})

	t.Run("refuses a review without a confirmed reservation", func(t *testing.T) {
		service, reviewRepo, storeRepo, userRepo, reservationRepo := newReviewService()

		storeRepo.On("GetByID", mock.Anything, "store-1").Return(&entities.Store{ID: "store-1"}, nil)
		userRepo.On("GetByID", mock.Anything, "user-1").Return(&entities.User{ID: "user-1"}, nil)
		reservationRepo.On("ExistsConfirmed", mock.Anything, "user-1", "store-1").Return(false, nil)

		_, err := service.CreateReview(context.Background(), validInput)

		assert.True(t, apperrors.HasCode(err, apperrors.CodeReservationNotFound))
		reviewRepo.AssertNotCalled(t, "Create")
	})

	t.Run("a pending reservation is not enough", func(t *testing.T) {
		// ExistsConfirmed only matches CONFIRMED rows, so a pending visit
		// reports false and the review is refused.
		service, reviewRepo, storeRepo, userRepo, reservationRepo := newReviewService()

		storeRepo.On("GetByID", mock.Anything, "store-1").Return(&entities.Store{ID: "store-1"}, nil)
		userRepo.On("GetByID", mock.Anything, "user-1").Return(&entities.User{ID: "user-1"}, nil)
		reservationRepo.On("ExistsConfirmed", mock.Anything, "user-1", "store-1").Return(false, nil)

		_, err := service.CreateReview(context.Background(), validInput)

		assert.Error(t, err)
		reviewRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects an out-of-range rating", func(t *testing.T) {
		service, reviewRepo, _, _, _ := newReviewService()

		for _, rating := range []int{0, 6, -1} {
			input := validInput
			input.Rating = rating

			_, err := service.CreateReview(context.Background(), input)

			assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidRating))
		}
		reviewRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects empty content", func(t *testing.T) {
		service, reviewRepo, _, _, _ := newReviewService()

		input := validInput
		input.Content = "   "

		_, err := service.CreateReview(context.Background(), input)

		assert.True(t, apperrors.HasCode(err, apperrors.CodeReviewContentEmpty))
		reviewRepo.AssertNotCalled(t, "Create")
	})
}

func TestReviewService_UpdateReview(t *testing.T) {
	t.Run("author updates content and rating", func(t *testing.T) {
		service, reviewRepo, storeRepo, _, _ := newReviewService()

		existing := &entities.Review{ID: "rev-1", StoreID: "store-1", UserID: "user-1", Content: "ok", Rating: 3}
		reviewRepo.On("GetByID", mock.Anything, "rev-1").Return(existing, nil)
		reviewRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *entities.Review) bool {
			return r.Rating == 4 && r.Content == "better than I remembered"
		})).Return(nil)
		storeRepo.On("RecomputeRating", mock.Anything, "store-1").Return(4.0, nil)

		review, err := service.UpdateReview(context.Background(), "rev-1", "user-1", services.UpdateReviewInput{
			Content: "better than I remembered",
			Rating:  4,
		})

		assert.NoError(t, err)
		assert.Equal(t, 4, review.Rating)
		storeRepo.AssertExpectations(t)
	})

	t.Run("refuses a non-author caller, even the store owner", func(t *testing.T) {
		service, reviewRepo, _, _, _ := newReviewService()

		existing := &entities.Review{ID: "rev-1", StoreID: "store-1", UserID: "user-1"}
		reviewRepo.On("GetByID", mock.Anything, "rev-1").Return(existing, nil)

		_, err := service.UpdateReview(context.Background(), "rev-1", "owner-1", services.UpdateReviewInput{
			Content: "nope",
			Rating:  1,
		})

		appErr, ok := apperrors.AsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
		reviewRepo.AssertNotCalled(t, "Update")
	})
}

func TestReviewService_DeleteReview(t *testing.T) {
	existing := &entities.Review{ID: "rev-1", StoreID: "store-1", UserID: "user-1"}
	store := &entities.Store{ID: "store-1", OwnerID: "owner-1"}

	t.Run("author deletes own review", func(t *testing.T) {
		service, reviewRepo, storeRepo, _, _ := newReviewService()

		reviewRepo.On("GetByID", mock.Anything, "rev-1").Return(existing, nil)
		storeRepo.On("GetByID", mock.Anything, "store-1").Return(store, nil)
		reviewRepo.On("Delete", mock.Anything, "rev-1").Return(nil)
		storeRepo.On("RecomputeRating", mock.Anything, "store-1").Return(0.0, nil)

		err := service.DeleteReview(context.Background(), "rev-1", "user-1")

		assert.NoError(t, err)
		storeRepo.AssertExpectations(t)
	})

	t.Run("store owner deletes a customer review", func(t *testing.T) {
		service, reviewRepo, storeRepo, _, _ := newReviewService()

		reviewRepo.On("GetByID", mock.Anything, "rev-1").Return(existing, nil)
		storeRepo.On("GetByID", mock.Anything, "store-1").Return(store, nil)
		reviewRepo.On("Delete", mock.Anything, "rev-1").Return(nil)
		storeRepo.On("RecomputeRating", mock.Anything, "store-1").Return(0.0, nil)

		err := service.DeleteReview(context.Background(), "rev-1", "owner-1")

		assert.NoError(t, err)
	})

	t.Run("refuses an unrelated caller", func(t *testing.T) {
		service, reviewRepo, storeRepo, _, _ := newReviewService()

		reviewRepo.On("GetByID", mock.Anything, "rev-1").Return(existing, nil)
		storeRepo.On("GetByID", mock.Anything, "store-1").Return(store, nil)

		err := service.DeleteReview(context.Background(), "rev-1", "stranger")

		appErr, ok := apperrors.AsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
		reviewRepo.AssertNotCalled(t, "Delete")
	})
}
