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

// ReservationAdapter implements the ReservationRepository interface
type ReservationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReservationAdapter creates a new reservation adapter
func NewReservationAdapter(client *postgres.Client) repositories.ReservationRepository {
	return &ReservationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var reservationColumns = []interface{}{
	"id", "store_id", "user_id", "phone_number", "reserved_at",
	"status", "reject_reason", "created_at", "updated_at",
}

// Create creates a new reservation
func (a *ReservationAdapter) Create(ctx context.Context, reservation *entities.Reservation) error {
	record := goqu.Record{
		"id":            reservation.ID,
		"store_id":      reservation.StoreID,
		"user_id":       reservation.UserID,
		"phone_number":  sql.NullString{String: reservation.PhoneNumber, Valid: reservation.PhoneNumber != ""},
		"reserved_at":   reservation.ReservedAt,
		"status":        reservation.Status,
		"reject_reason": sql.NullString{},
		"created_at":    reservation.CreatedAt,
		"updated_at":    reservation.UpdatedAt,
	}

	query, args, err := a.db.Insert("reservations").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create reservation", err)
	}

	return nil
}

// GetByID retrieves a reservation by ID
func (a *ReservationAdapter) GetByID(ctx context.Context, id string) (*entities.Reservation, error) {
	query, args, err := a.db.Select(reservationColumns...).
		From("reservations").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	reservation, err := scanReservation(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(apperrors.CodeReservationNotFound,
			fmt.Sprintf("reservation with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get reservation", err)
	}

	return reservation, nil
}

// TransitionStatus applies a status transition as a compare-and-swap
// against the current status. It returns (nil, nil) when the swap lost to
// a concurrent transition on an existing row.
func (a *ReservationAdapter) TransitionStatus(ctx context.Context, id string, from, to entities.ReservationStatus, rejectReason string) (*entities.Reservation, error) {
	record := goqu.Record{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	if to == entities.ReservationStatusRejected {
		record["reject_reason"] = sql.NullString{String: rejectReason, Valid: rejectReason != ""}
	}

	query, args, err := a.db.Update("reservations").
		Set(record).
		Where(goqu.Ex{"id": id, "status": from}).
		Returning(reservationColumns...).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build transition query", err)
	}

	reservation, err := scanReservation(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		// Either the row is gone or its status moved under us.
		exists, existsErr := a.exists(ctx, id)
		if existsErr != nil {
			return nil, existsErr
		}
		if !exists {
			return nil, apperrors.NewNotFoundError(apperrors.CodeReservationNotFound,
				fmt.Sprintf("reservation with id %s not found", id))
		}
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to transition reservation status", err)
	}

	return reservation, nil
}

// ListByStoreAndTimeRange retrieves a store's reservations with
// reserved_at in [from, to], ordered by reserved_at ascending
func (a *ReservationAdapter) ListByStoreAndTimeRange(ctx context.Context, storeID string, from, to time.Time) ([]*entities.Reservation, error) {
	ds := a.db.Select(reservationColumns...).
		From("reservations").
		Where(goqu.Ex{"store_id": storeID}).
		Where(goqu.C("reserved_at").Gte(from)).
		Where(goqu.C("reserved_at").Lte(to)).
		Order(goqu.I("reserved_at").Asc())

	return a.queryReservations(ctx, ds)
}

// ListByUser retrieves a user's reservations ordered by reserved_at descending
func (a *ReservationAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Reservation, error) {
	ds := a.db.Select(reservationColumns...).
		From("reservations").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("reserved_at").Desc())

	return a.queryReservations(ctx, ds)
}

// ListByStoreAndStatus retrieves a store's reservations in a given status
func (a *ReservationAdapter) ListByStoreAndStatus(ctx context.Context, storeID string, status entities.ReservationStatus) ([]*entities.Reservation, error) {
	ds := a.db.Select(reservationColumns...).
		From("reservations").
		Where(goqu.Ex{"store_id": storeID, "status": status}).
		Order(goqu.I("reserved_at").Asc())

	return a.queryReservations(ctx, ds)
}

// ExistsConfirmed reports whether the user holds a CONFIRMED reservation
// at the store
func (a *ReservationAdapter) ExistsConfirmed(ctx context.Context, userID, storeID string) (bool, error) {
	return a.existsWhere(ctx, goqu.Ex{
		"user_id":  userID,
		"store_id": storeID,
		"status":   entities.ReservationStatusConfirmed,
	})
}

// ExistsActiveByStore reports whether the store has PENDING or CONFIRMED
// reservations
func (a *ReservationAdapter) ExistsActiveByStore(ctx context.Context, storeID string) (bool, error) {
	return a.existsWhere(ctx, goqu.Ex{
		"store_id": storeID,
		"status": []entities.ReservationStatus{
			entities.ReservationStatusPending,
			entities.ReservationStatusConfirmed,
		},
	})
}

func (a *ReservationAdapter) exists(ctx context.Context, id string) (bool, error) {
	return a.existsWhere(ctx, goqu.Ex{"id": id})
}

func (a *ReservationAdapter) existsWhere(ctx context.Context, where goqu.Ex) (bool, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("reservations").
		Where(where).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build exists query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to check reservations", err)
	}
	return count > 0, nil
}

func (a *ReservationAdapter) queryReservations(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Reservation, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reservations", err)
	}
	defer rows.Close()

	var reservations []*entities.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan reservation", err)
		}
		reservations = append(reservations, reservation)
	}

	return reservations, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*entities.Reservation, error) {
	reservation := &entities.Reservation{}
	var phoneNumber, rejectReason sql.NullString

	err := row.Scan(
		&reservation.ID,
		&reservation.StoreID,
		&reservation.UserID,
		&phoneNumber,
		&reservation.ReservedAt,
		&reservation.Status,
		&rejectReason,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.PhoneNumber = phoneNumber.String
	reservation.RejectReason = rejectReason.String
	return reservation, nil
}
