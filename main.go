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
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pairs/internal/auth"
	"github.com/robalobadob/pairs/internal/config"
	"github.com/robalobadob/pairs/internal/database"
	"github.com/robalobadob/pairs/internal/httpserver"
	"github.com/robalobadob/pairs/internal/store"
	"github.com/robalobadob/pairs/internal/symbols"
)

func main() {
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

	if err := symbols.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load symbol palette")
	}
	palette, err := symbols.Palette(symbols.Size())
	if err != nil {
		log.Fatal().Err(err).Msg("palette")
	}
	if cfg.Pairs > len(palette) {
		log.Fatal().Int("pairs", cfg.Pairs).Int("symbols", len(palette)).Msg("not enough symbols for PAIRS")
	}

	db, err := database.OpenMigrated(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mem := store.NewMemoryStore()
	go pruneSessions(ctx, mem, cfg.SessionTTL)

	srv := httpserver.New(mem, db, httpserver.Options{
		Palette:       palette,
		Pairs:         cfg.Pairs,
		MismatchDelay: cfg.MismatchDelay,
		PreviewDelay:  cfg.PreviewDelay,
		DailySalt:     cfg.DailySalt,
		ClientOrigin:  cfg.ClientOrigin,
		Auth: auth.Config{
			Secret:      cfg.JWTSecret,
			ExpiresDays: cfg.JWTExpiresDays,
			CookieName:  cfg.CookieName,
			Secure:      cfg.Production,
		},
	})

	hs := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("port", cfg.Port).Int("pairs", cfg.Pairs).Msg("starting pairs server")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// pruneSessions drops games nobody has touched within ttl.
func pruneSessions(ctx context.Context, st store.Store, ttl time.Duration) {
	t := time.NewTicker(ttl / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := st.Prune(ctx, ttl); n > 0 {
				log.Info().Int("pruned", n).Int("live", st.Len()).Msg("pruned idle games")
			}
		}
	}
}
