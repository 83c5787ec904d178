package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zerobase/storereservation/internal/domain/entities"
	"github.com/zerobase/storereservation/internal/domain/repositories"
	apperrors "github.com/zerobase/storereservation/pkg/errors"
)

// ReviewService handles review authoring. Every mutation synchronously
// recomputes the store's cached rating aggregate.
type ReviewService struct {
	reviewRepo      repositories.ReviewRepository
	storeRepo       repositories.StoreRepository
	userRepo        repositories.UserRepository
	reservationRepo repositories.ReservationRepository
	storeService    *StoreService
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	storeRepo repositories.StoreRepository,
	userRepo repositories.UserRepository,
	reservationRepo repositories.ReservationRepository,
	storeService *StoreService,
) *ReviewService {
	return &ReviewService{
		reviewRepo:      reviewRepo,
		storeRepo:       storeRepo,
		userRepo:        userRepo,
		reservationRepo: reservationRepo,
		storeService:    storeService,
	}
}

// CreateReviewInput carries the review creation parameters.
type CreateReviewInput struct {
	StoreID string
	UserID  string
	Content string
	Rating  int
}

// UpdateReviewInput carries the review update parameters.
type UpdateReviewInput struct {
	Content string
	Rating  int
}

// CreateReview creates a review. The author must hold at least one
// CONFIRMED reservation at the store.
func (s *ReviewService) CreateReview(ctx context.Context, input CreateReviewInput) (*entities.Review, error) {
	if err := validateReviewContent(input.Content, input.Rating); err != nil {
		return nil, err
	}

	if _, err := s.storeRepo.GetByID(ctx, input.StoreID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	confirmed, err := s.reservationRepo.ExistsConfirmed(ctx, input.UserID, input.StoreID)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, apperrors.NewNotFoundError(apperrors.CodeReservationNotFound,
			"no confirmed reservation found for this store")
	}

	now := time.Now().UTC()
	review := &entities.Review{
		ID:        uuid.New().String(),
		StoreID:   input.StoreID,
		UserID:    input.UserID,
		Content:   input.Content,
		Rating:    input.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.storeService.UpdateAverageRating(ctx, input.StoreID); err != nil {
		return nil, err
	}

	log.Info().Str("review_id", review.ID).Str("store_id", review.StoreID).Msg("review created")
	return review, nil
}

// GetReviewsByStore lists all reviews for a store.
func (s *ReviewService) GetReviewsByStore(ctx context.Context, storeID string) ([]*entities.Review, error) {
	return s.reviewRepo.ListByStore(ctx, storeID)
}

// UpdateReview updates a review's content and rating. Only the author may
// update.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID, callerID string, input UpdateReviewInput) (*entities.Review, error) {
	if err := validateReviewContent(input.Content, input.Rating); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != callerID {
		return nil, apperrors.NewUnauthorizedError("caller is not the review author")
	}

	review.Content = input.Content
	review.Rating = input.Rating
	review.UpdatedAt = time.Now().UTC()

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	if err := s.storeService.UpdateAverageRating(ctx, review.StoreID); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview deletes a review. The author or the store owner may
// delete.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, callerID string) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	store, err := s.storeRepo.GetByID(ctx, review.StoreID)
	if err != nil {
		return err
	}

	if review.UserID != callerID && store.OwnerID != callerID {
		return apperrors.NewUnauthorizedError("caller is neither the review author nor the store owner")
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}

	if err := s.storeService.UpdateAverageRating(ctx, review.StoreID); err != nil {
		return err
	}

	log.Info().Str("review_id", reviewID).Msg("review deleted")
	return nil
}

func validateReviewContent(content string, rating int) error {
	if !entities.ValidRating(rating) {
		return apperrors.NewValidationError(apperrors.CodeInvalidRating,
			"rating must be between 1 and 5")
	}
	if strings.TrimSpace(content) == "" {
		return apperrors.NewValidationError(apperrors.CodeReviewContentEmpty,
			"review content must not be empty")
	}
	return nil
}
