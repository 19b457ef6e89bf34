package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/bloodlink/donation-system/internal/api"
	"github.com/bloodlink/donation-system/internal/infrastructure/db/mongo"
	"github.com/bloodlink/donation-system/internal/infrastructure/db/redis"
	"github.com/bloodlink/donation-system/internal/infrastructure/hash"
	"github.com/bloodlink/donation-system/internal/infrastructure/notify"
	"github.com/bloodlink/donation-system/internal/infrastructure/queue"
	"github.com/bloodlink/donation-system/internal/pkg/config"
	"github.com/bloodlink/donation-system/pkg/logger"

	_ "github.com/bloodlink/donation-system/docs"
)

// @title        Blood Donation API
// @version      1.0
// @description  Blood donation coordination service: accounts, two-step login, donations, requests, and appointments.

// @securityDefinitions.apikey BearerAuth
// @in    header
// @name  Authorization
// @description Type "Bearer" followed by a space and the JWT token.

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis ---
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Outbound mail ---
	notifier := notify.NewSMTPNotifier(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
	mailQueue := queue.NewMailDispatcher(cfg.Mail.Workers, notifier, log)
	mailQueue.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		Mongo:         db,
		Redis:         rdb,
		Hasher:        hash.NewBcryptHasher(0),
		Notifier:      notifier,
		Mail:          mailQueue,
		Log:           log,
		JWTSecret:     cfg.JWTSecret,
		JWTTTL:        cfg.JWTTTL,
		OTPTTL:        cfg.OTPTTL,
		StatsCacheTTL: cfg.Stats.CacheTTL,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes creates all collection indexes up front so the first
// request never pays for index builds.
func ensureIndexes(ctx context.Context, db *mongodriver.Database) error {
	if err := mongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongo.NewDonationRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongo.NewRequestRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongo.NewAppointmentRepository(db).EnsureIndexes(ctx)
}
