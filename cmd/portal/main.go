package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zafiri/staff-portal/internal/api"
	"github.com/zafiri/staff-portal/internal/core/service"
	"github.com/zafiri/staff-portal/internal/infrastructure/db/mongo"
	"github.com/zafiri/staff-portal/internal/infrastructure/db/redis"
	"github.com/zafiri/staff-portal/internal/infrastructure/directory"
	"github.com/zafiri/staff-portal/internal/infrastructure/queue"
	"github.com/zafiri/staff-portal/internal/pkg/config"
	"github.com/zafiri/staff-portal/pkg/logger"
)

func main() {
	// .env is optional; real deployments configure the environment.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	dirClient, err := directory.New(directory.Config{
		BaseURL: cfg.Directory.BaseURL,
		Timeout: cfg.Directory.Timeout,
	}, logger.Named("directory"))
	if err != nil {
		log.Fatal().Err(err).Msg("directory client setup failed")
	}

	// Prime the CSRF cookie before any mutating call reaches the
	// backend. Failure is logged; the client re-primes lazily.
	if err := dirClient.PrimeCSRF(ctx); err != nil {
		log.Warn().Err(err).Msg("initial CSRF priming failed")
	}

	// --- Audit trail ---
	auditRepo := mongo.NewAuditRepository(db)
	auditQueue := queue.NewAuditDispatcher(cfg.AuditWorkers, auditRepo, logger.Named("audit"))
	auditQueue.Start(ctx)

	// --- Services ---
	sessionRepo := redis.NewSessionRepository(rdb, cfg.SessionTTL, logger.Named("sessions"))
	authService := service.NewAuthService(dirClient, sessionRepo, auditQueue, cfg.JWTSecret, cfg.SessionTTL, logger.Named("auth"))
	registrationService := service.NewRegistrationService(dirClient, auditQueue, cfg.OrgEmailSuffix, logger.Named("registration"))
	rosterService := service.NewRosterService(dirClient, auditQueue, logger.Named("roster"))

	e := api.NewRouter(api.Dependencies{
		Auth:         authService,
		Registration: registrationService,
		Roster:       rosterService,
		Redis:        rdb,
		Mongo:        db,
		JWTSecret:    cfg.JWTSecret,
		SessionTTL:   cfg.SessionTTL,
		Logger:       logger.Named("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("portal gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("portal gateway stopped")
}
