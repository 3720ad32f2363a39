package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ALDWIL/doxrep/internal/config"
	jwtinfra "github.com/ALDWIL/doxrep/internal/infrastructure/jwt"
	"github.com/ALDWIL/doxrep/internal/infrastructure/postgres"
	s3infra "github.com/ALDWIL/doxrep/internal/infrastructure/s3"
	"github.com/ALDWIL/doxrep/internal/infrastructure/smtp"
	"github.com/ALDWIL/doxrep/internal/logger"
	transporthttp "github.com/ALDWIL/doxrep/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	log := logger.New()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()

	// Creates tables on first boot; no-op afterwards.
	if err := postgres.Bootstrap(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("bootstrap schema")
	}

	jwtProvider, err := jwtinfra.NewProvider(cfg.AuthSecret, time.Duration(cfg.SessionTTLDays)*24*time.Hour)
	if err != nil {
		log.Fatal().Err(err).Msg("init jwt provider")
	}

	s3Client, err := s3infra.NewClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init s3 client")
	}

	deps := &transporthttp.Deps{
		VerificationRepo: postgres.NewVerificationRepo(pool),
		UserRepo:         postgres.NewUserRepo(pool),
		SessionRepo:      postgres.NewSessionRepo(pool),
		SubscriptionRepo: postgres.NewSubscriptionRepo(pool),
		PromoRepo:        postgres.NewPromoRepo(pool),
		IncidentRepo:     postgres.NewIncidentRepo(pool),
		RecipientRepo:    postgres.NewRecipientRepo(pool),
		ObjectStore:      s3infra.NewStore(s3Client, cfg),
		Mailer: smtp.NewMailer(smtp.Options{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			From:     cfg.SMTPFrom,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		}),
		JWTProvider: jwtProvider,
		Logger:      log,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.AppPort).Str("env", cfg.AppEnv).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
