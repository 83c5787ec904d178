package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/zerobase/storereservation/internal/adapters/database"
	"github.com/zerobase/storereservation/internal/domain/entities"
	"github.com/zerobase/storereservation/internal/infrastructure/clients/postgres"
	"github.com/zerobase/storereservation/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS stores (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	owner_id     TEXT NOT NULL REFERENCES users(id),
	latitude     DOUBLE PRECISION NOT NULL,
	longitude    DOUBLE PRECISION NOT NULL,
	rating       DOUBLE PRECISION NOT NULL DEFAULT 0,
	review_count INTEGER NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS reservations (
	id            TEXT PRIMARY KEY,
	store_id      TEXT NOT NULL REFERENCES stores(id),
	user_id       TEXT NOT NULL REFERENCES users(id),
	phone_number  TEXT,
	reserved_at   TIMESTAMPTZ NOT NULL,
	status        TEXT NOT NULL,
	reject_reason TEXT,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reservations_store_reserved_at
	ON reservations (store_id, reserved_at);
CREATE INDEX IF NOT EXISTS idx_reservations_user
	ON reservations (user_id, reserved_at DESC);

CREATE TABLE IF NOT EXISTS reviews (
	id         TEXT PRIMARY KEY,
	store_id   TEXT NOT NULL REFERENCES stores(id),
	user_id    TEXT NOT NULL REFERENCES users(id),
	content    TEXT NOT NULL,
	rating     INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reviews_store ON reviews (store_id, created_at);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				reviews,
				reservations,
				stores,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	userRepo := database.NewUserAdapter(pgClient)
	storeRepo := database.NewStoreAdapter(pgClient)
	reservationRepo := database.NewReservationAdapter(pgClient)
	reviewRepo := database.NewReviewAdapter(pgClient)

	now := time.Now()

	// 1. Seed users
	partner := &entities.User{
		ID:           uuid.New().String(),
		Username:     "partner1",
		PasswordHash: hashPassword("partner1-password"),
		Role:         entities.RolePartner,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	customers := []*entities.User{
		{ID: uuid.New().String(), Username: "customer1", PasswordHash: hashPassword("customer1-password"), Role: entities.RoleCustomer, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), Username: "customer2", PasswordHash: hashPassword("customer2-password"), Role: entities.RoleCustomer, CreatedAt: now, UpdatedAt: now},
	}

	if err := userRepo.Create(ctx, partner); err != nil {
		log.Printf("Failed to create user %s: %v", partner.Username, err)
	}
	for _, u := range customers {
		if err := userRepo.Create(ctx, u); err != nil {
			log.Printf("Failed to create user %s: %v", u.Username, err)
		}
	}

	// 2. Seed stores (Seoul area)
	stores := []*entities.Store{
		{
			ID:          uuid.New().String(),
			Name:        "Gangnam Grill House",
			Description: "Charcoal barbecue, walk-ins and reservations",
			OwnerID:     partner.ID,
			Location:    entities.Location{Latitude: 37.4979, Longitude: 127.0276},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.New().String(),
			Name:        "Hongdae Noodle Bar",
			Description: "Hand-pulled noodles, late kitchen",
			OwnerID:     partner.ID,
			Location:    entities.Location{Latitude: 37.5563, Longitude: 126.9220},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.New().String(),
			Name:        "Itaewon Brunch Club",
			Description: "Weekend brunch, reservation recommended",
			OwnerID:     partner.ID,
			Location:    entities.Location{Latitude: 37.5345, Longitude: 126.9946},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
	for _, s := range stores {
		if err := storeRepo.Create(ctx, s); err != nil {
			log.Printf("Failed to create store %s: %v", s.Name, err)
		}
	}

	// 3. Seed reservations: one confirmed in the past (review-eligible),
	// one pending for tomorrow
	confirmed := &entities.Reservation{
		ID:          uuid.New().String(),
		StoreID:     stores[0].ID,
		UserID:      customers[0].ID,
		PhoneNumber: "010-1234-5678",
		ReservedAt:  now.Add(-48 * time.Hour),
		Status:      entities.ReservationStatusConfirmed,
		CreatedAt:   now.Add(-72 * time.Hour),
		UpdatedAt:   now.Add(-72 * time.Hour),
	}
	pending := &entities.Reservation{
		ID:          uuid.New().String(),
		StoreID:     stores[1].ID,
		UserID:      customers[1].ID,
		PhoneNumber: "010-8765-4321",
		ReservedAt:  now.Add(24 * time.Hour),
		Status:      entities.ReservationStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, r := range []*entities.Reservation{confirmed, pending} {
		if err := reservationRepo.Create(ctx, r); err != nil {
			log.Printf("Failed to create reservation %s: %v", r.ID, err)
		}
	}

	// 4. Seed a review from the confirmed visit plus the rating aggregate
	review := &entities.Review{
		ID:        uuid.New().String(),
		StoreID:   stores[0].ID,
		UserID:    customers[0].ID,
		Content:   "Great cuts, quick seating even on a Friday.",
		Rating:    5,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := reviewRepo.Create(ctx, review); err != nil {
		log.Printf("Failed to create review: %v", err)
	}
	if _, err := storeRepo.RecomputeRating(ctx, stores[0].ID); err != nil {
		log.Printf("Failed to recompute rating for %s: %v", stores[0].Name, err)
	}

	log.Println("Seeding complete")
}

func hashPassword(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	return string(hash)
}
