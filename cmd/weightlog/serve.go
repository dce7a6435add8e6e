package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	adapthttp "weightlog/internal/adapter/http"
	"weightlog/internal/adapter/schedule"
	"weightlog/internal/config"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			b, err := openBackend(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = b.close() }()

			obs, goals, reports := b.services(cfg)
			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           adapthttp.New(obs, goals, reports).Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			if cfg.RemindersEnabled {
				reminder := schedule.New(obs, schedule.LogNotifier{}, cfg.Analytics.ReminderStaleDays)
				if err := reminder.Start(); err != nil {
					return err
				}
				defer reminder.Stop()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", cfg.Addr).Msg("listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case <-ctx.Done():
				log.Info().Msg("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
