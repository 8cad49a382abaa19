package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"vetclinic/internal/config"
	"vetclinic/internal/database"
	"vetclinic/internal/domain/notification"
	"vetclinic/internal/logger"
	"vetclinic/internal/pkg/whatsapp"
	"vetclinic/internal/server"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "vetclinic",
		Short: "Veterinary clinic booking API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), migrateCmd(), cleanupCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, log, err := bootstrap()
			if err != nil {
				return err
			}
			if err := database.Migrate(db, server.Models()...); err != nil {
				return err
			}
			log.Info().Int("models", len(server.Models())).Msg("migrations applied")
			return nil
		},
	}
}

func cleanupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete notifications older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, log, err := bootstrap()
			if err != nil {
				return err
			}
			days, _ := cmd.Flags().GetInt("days")
			if days <= 0 {
				days = cfg.NotificationRetentionDays
			}
			svc := notification.NewService(notification.NewRepository(db), nil, nil, log)
			n, err := svc.CleanupOlderThan(cmd.Context(), time.Duration(days)*24*time.Hour)
			if err != nil {
				return fmt.Errorf("cleanup notifications: %w", err)
			}
			log.Info().Int64("deleted", n).Int("days", days).Msg("notification cleanup completed")
			return nil
		},
	}
	cmd.Flags().Int("days", 0, "retention in days (defaults to NOTIFICATION_RETENTION_DAYS)")
	return cmd
}

func bootstrap() (*config.Config, *gorm.DB, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.LogLevel, cfg.AppEnv)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return nil, nil, log, fmt.Errorf("connect database: %w", err)
	}
	return cfg, db, log, nil
}

func runServer() error {
	cfg, db, log, err := bootstrap()
	if err != nil {
		return err
	}
	if err := database.Migrate(db, server.Models()...); err != nil {
		return err
	}

	sender := whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppToken, cfg.WhatsAppEnabled, log)
	app := server.New(cfg, db, sender, log)
	if err := app.Start(); err != nil {
		return fmt.Errorf("start background jobs: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.AppEnv).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	app.Stop(shutdownCtx)
	return nil
}
