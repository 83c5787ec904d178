package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zerobase/storereservation/internal/adapters/cache"
	"github.com/zerobase/storereservation/internal/adapters/database"
	"github.com/zerobase/storereservation/internal/api/handlers"
	"github.com/zerobase/storereservation/internal/api/routes"
	"github.com/zerobase/storereservation/internal/application/services"
	"github.com/zerobase/storereservation/internal/domain/providers"
	"github.com/zerobase/storereservation/internal/domain/repositories"
	"github.com/zerobase/storereservation/internal/infrastructure/clients/postgres"
	"github.com/zerobase/storereservation/internal/infrastructure/clients/redis"
	"github.com/zerobase/storereservation/internal/infrastructure/observability"
	"github.com/zerobase/storereservation/internal/infrastructure/tokens"
	"github.com/zerobase/storereservation/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Initialize Redis client; the application works without caching
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	// Initialize adapters
	userAdapter := database.NewUserAdapter(pgClient)
	reservationAdapter := database.NewReservationAdapter(pgClient)
	reviewAdapter := database.NewReviewAdapter(pgClient)

	var storeAdapter repositories.StoreRepository = database.NewStoreAdapter(pgClient)
	if cacheProvider != nil {
		storeAdapter = database.NewCachedStoreAdapter(storeAdapter, cacheProvider)
		log.Info().Msg("store adapter wrapped with caching layer")
	}

	// Initialize services
	issuer := tokens.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	userService := services.NewUserService(userAdapter)
	authService := services.NewAuthService(userAdapter, issuer)
	storeService := services.NewStoreService(storeAdapter, userAdapter, reservationAdapter)
	customerReservationService := services.NewCustomerReservationService(reservationAdapter, storeAdapter, userAdapter)
	ownerReservationService := services.NewOwnerReservationService(reservationAdapter, storeAdapter, userAdapter)
	kioskService := services.NewKioskService(reservationAdapter)
	reviewService := services.NewReviewService(reviewAdapter, storeAdapter, userAdapter, reservationAdapter, storeService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, authService)
	userHandler := handlers.NewUserHandler(userService)
	storeHandler := handlers.NewStoreHandler(storeService)
	reservationHandler := handlers.NewReservationHandler(customerReservationService)
	ownerReservationHandler := handlers.NewOwnerReservationHandler(ownerReservationService)
	kioskHandler := handlers.NewKioskHandler(kioskService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Set up router
	router := routes.NewRouter(
		authHandler,
		userHandler,
		storeHandler,
		reservationHandler,
		ownerReservationHandler,
		kioskHandler,
		reviewHandler,
		issuer,
		metrics,
		pgClient,
	)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
