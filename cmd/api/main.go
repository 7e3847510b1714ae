package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/prep-maker/backend/internal/app"
	"github.com/prep-maker/backend/internal/auth"
	"github.com/prep-maker/backend/internal/config"
	"github.com/prep-maker/backend/internal/store"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}

	ctx := context.Background()
	db, err := store.Open(ctx, store.Options{
		URL:       cfg.SurrealURL,
		Namespace: cfg.SurrealNS,
		Database:  cfg.SurrealDB,
		Username:  cfg.SurrealUser,
		Password:  cfg.SurrealPass,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer func() {
		if err := db.Close(ctx); err != nil {
			log.Error().Err(err).Msg("close store")
		}
	}()

	users := store.NewSurrealUsers(db)
	writings := store.NewSurrealWritings(db)
	blocks := store.NewSurrealBlocks(db)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)

	server := app.NewServer(app.ServerDeps{
		Auth:        app.NewAuthService(users, tokens, cfg.BcryptCost),
		Writings:    app.NewWritingService(writings, users, blocks),
		Blocks:      app.NewBlockService(blocks, writings),
		Users:       users,
		WritingRepo: writings,
		BlockRepo:   blocks,
		Ping: func(ctx context.Context) error {
			return store.Ping(ctx, db)
		},
		CORSOrigin: cfg.CORSOrigin,
		Logger:     log,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("serve")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
