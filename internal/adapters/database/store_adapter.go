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

// StoreAdapter implements the StoreRepository interface
type StoreAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewStoreAdapter creates a new store adapter
func NewStoreAdapter(client *postgres.Client) repositories.StoreRepository {
	return &StoreAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var storeColumns = []interface{}{
	"id", "name", "description", "owner_id", "latitude", "longitude",
	"rating", "review_count", "created_at", "updated_at",
}

// Create creates a new store
func (a *StoreAdapter) Create(ctx context.Context, store *entities.Store) error {
	record := goqu.Record{
		"id":           store.ID,
		"name":         store.Name,
		"description":  store.Description,
		"owner_id":     store.OwnerID,
		"latitude":     store.Location.Latitude,
		"longitude":    store.Location.Longitude,
		"rating":       store.Rating,
		"review_count": store.ReviewCount,
		"created_at":   store.CreatedAt,
		"updated_at":   store.UpdatedAt,
	}

	query, args, err := a.db.Insert("stores").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create store", err)
	}

	return nil
}

// GetByID retrieves a store by ID
func (a *StoreAdapter) GetByID(ctx context.Context, id string) (*entities.Store, error) {
	query, args, err := a.db.Select(storeColumns...).
		From("stores").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	store := &entities.Store{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&store.ID,
		&store.Name,
		&store.Description,
		&store.OwnerID,
		&store.Location.Latitude,
		&store.Location.Longitude,
		&store.Rating,
		&store.ReviewCount,
		&store.CreatedAt,
		&store.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(apperrors.CodeStoreNotFound,
			fmt.Sprintf("store with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get store", err)
	}

	return store, nil
}

// List retrieves all stores
func (a *StoreAdapter) List(ctx context.Context) ([]*entities.Store, error) {
	query, args, err := a.db.Select(storeColumns...).
		From("stores").
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list stores", err)
	}
	defer rows.Close()

	var stores []*entities.Store
	for rows.Next() {
		store := &entities.Store{}
		err := rows.Scan(
			&store.ID,
			&store.Name,
			&store.Description,
			&store.OwnerID,
			&store.Location.Latitude,
			&store.Location.Longitude,
			&store.Rating,
			&store.ReviewCount,
			&store.CreatedAt,
			&store.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan store", err)
		}
		stores = append(stores, store)
	}

	return stores, nil
}

// Update updates a store's mutable fields
func (a *StoreAdapter) Update(ctx context.Context, store *entities.Store) error {
	record := goqu.Record{
		"name":        store.Name,
		"description": store.Description,
		"latitude":    store.Location.Latitude,
		"longitude":   store.Location.Longitude,
		"updated_at":  store.UpdatedAt,
	}

	query, args, err := a.db.Update("stores").
		Set(record).
		Where(goqu.Ex{"id": store.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update store", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(apperrors.CodeStoreNotFound,
			fmt.Sprintf("store with id %s not found", store.ID))
	}

	return nil
}

// Delete deletes a store
func (a *StoreAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("stores").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete store", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(apperrors.CodeStoreNotFound,
			fmt.Sprintf("store with id %s not found", id))
	}

	return nil
}

// RecomputeRating rederives the cached rating aggregate and review count
// from the review set in a single statement, so concurrent review writes
// serialize on the row and the last recompute always reflects the full set.
func (a *StoreAdapter) RecomputeRating(ctx context.Context, storeID string) (float64, error) {
	avg := a.db.From("reviews").
		Select(goqu.COALESCE(goqu.AVG("rating"), 0)).
		Where(goqu.Ex{"store_id": storeID})
	count := a.db.From("reviews").
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{"store_id": storeID})

	query, args, err := a.db.Update("stores").
		Set(goqu.Record{
			"rating":       avg,
			"review_count": count,
			"updated_at":   time.Now().UTC(),
		}).
		Where(goqu.Ex{"id": storeID}).
		Returning("rating").
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build rating recompute query", err)
	}

	var rating float64
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&rating)
	if err == sql.ErrNoRows {
		return 0, apperrors.NewNotFoundError(apperrors.CodeStoreNotFound,
			fmt.Sprintf("store with id %s not found", storeID))
	}
	if err != nil {
		return 0, apperrors.NewInternalError("failed to recompute store rating", err)
	}

	return rating, nil
}
