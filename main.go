// main.go
//
// Entrypoint for the quiz server.
// Startup order: .env → config → log level → content library → session
// store + idle sweeper → HTTP server. SIGINT/SIGTERM trigger a graceful stop.

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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordquest/internal/config"
	"github.com/robalobadob/wordquest/internal/content"
	"github.com/robalobadob/wordquest/internal/httpserver"
	"github.com/robalobadob/wordquest/internal/quiz"
	"github.com/robalobadob/wordquest/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lib, err := content.Open(ctx, cfg.Content)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.Content.Kind).Msg("failed to load content")
	}
	defer lib.Close()

	sessions := store.NewMemoryStore()
	sweeper := store.NewSweeper(sessions, cfg.SessionTTL, cfg.SweepEvery)
	if err := sweeper.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start session sweeper")
	}
	defer sweeper.Stop()

	srv := httpserver.New(sessions, lib, httpserver.Options{
		Secret:       cfg.SessionSecret,
		ClientOrigin: cfg.ClientOrigin,
		TokenTTL:     cfg.SessionTTL * 4,
		Secure:       cfg.Production,
		SessionOptions: []quiz.Option{
			quiz.WithTimings(cfg.Timings),
			quiz.WithShuffler(quiz.NewShuffler(cfg.ShuffleSeed)),
		},
	})

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.Port).Str("content", lib.SourceName()).Msg("starting quiz server")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}
