package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/zerobase/storereservation/internal/domain/entities"
	"github.com/zerobase/storereservation/internal/domain/repositories"
	"github.com/zerobase/storereservation/internal/infrastructure/clients/postgres"
	apperrors "github.com/zerobase/storereservation/pkg/errors"
)

// ReviewAdapter implements the ReviewRepository interface
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var reviewColumns = []interface{}{
	"id", "store_id", "user_id", "content", "rating", "created_at", "updated_at",
}

// Create creates a new review
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	record := goqu.Record{
		"id":         review.ID,
		"store_id":   review.StoreID,
		"user_id":    review.UserID,
		"content":    review.Content,
		"rating":     review.Rating,
		"created_at": review.CreatedAt,
		"updated_at": review.UpdatedAt,
	}

	query, args, err := a.db.Insert("reviews").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}

	return nil
}

// GetByID retrieves a review by ID
func (a *ReviewAdapter) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	query, args, err := a.db.Select(reviewColumns...).
		From("reviews").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	review := &entities.Review{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&review.ID,
		&review.StoreID,
		&review.UserID,
		&review.Content,
		&review.Rating,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(apperrors.CodeReviewNotFound,
			fmt.Sprintf("review with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get review", err)
	}

	return review, nil
}

// ListByStore retrieves reviews for a store in insertion order
func (a *ReviewAdapter) ListByStore(ctx context.Context, storeID string) ([]*entities.Review, error) {
	query, args, err := a.db.Select(reviewColumns...).
		From("reviews").
		Where(goqu.Ex{"store_id": storeID}).
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	var reviews []*entities.Review
	for rows.Next() {
		review := &entities.Review{}
		err := rows.Scan(
			&review.ID,
			&review.StoreID,
			&review.UserID,
			&review.Content,
			&review.Rating,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}

// Update updates a review's content and rating
func (a *ReviewAdapter) Update(ctx context.Context, review *entities.Review) error {
	record := goqu.Record{
		"content":    review.Content,
		"rating":     review.Rating,
		"updated_at": time.Now().UTC(),
	}

	query, args, err := a.db.Update("reviews").
		Set(record).
		Where(goqu.Ex{"id": review.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update review", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(apperrors.CodeReviewNotFound,
			fmt.Sprintf("review with id %s not found", review.ID))
	}

	return nil
}

// Delete deletes a review
func (a *ReviewAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("reviews").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete review", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(apperrors.CodeReviewNotFound,
			fmt.Sprintf("review with id %s not found", id))
	}

	return nil
}
