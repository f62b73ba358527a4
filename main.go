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

	"github.com/cadotvn/cadot-user/internal/api"
	"github.com/cadotvn/cadot-user/internal/auth"
	"github.com/cadotvn/cadot-user/internal/config"
	"github.com/cadotvn/cadot-user/internal/database"
	"github.com/cadotvn/cadot-user/internal/logger"
	"github.com/cadotvn/cadot-user/internal/observability"
	"github.com/cadotvn/cadot-user/internal/services"
	"github.com/cadotvn/cadot-user/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.Environment)

	if err := observability.InitSentry(cfg.SentryDSN, cfg.Environment); err != nil {
		log.Error().Err(err).Msg("Failed to initialize Sentry")
	}
	defer observability.FlushSentry()

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up the core components
	users := store.NewSQLiteStore(db)
	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.SecretKey, cfg.AccessTokenLifetime)
	userService := services.NewUserService(users, hasher)

	if err := userService.EnsureInitialSuperuser(context.Background(),
		cfg.FirstSuperuserEmail, cfg.FirstSuperuserUsername, cfg.FirstSuperuserPassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed initial superuser")
	}

	// Set up router
	router := api.NewRouter(cfg, userService, tokens, users)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
