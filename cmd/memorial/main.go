package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/memorialize/memorial-backend/internal/config"
	"github.com/memorialize/memorial-backend/internal/database"
	"github.com/memorialize/memorial-backend/internal/handler"
	"github.com/memorialize/memorial-backend/internal/logger"
	"github.com/memorialize/memorial-backend/internal/repository"
	"github.com/memorialize/memorial-backend/internal/router"
	"github.com/memorialize/memorial-backend/internal/server"
	"github.com/memorialize/memorial-backend/internal/service"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var rootCmd = &cobra.Command{
	Use:   "memorial",
	Short: "Memorial profiles API",
	Long: `memorial serves the memorial profile API: creating, searching, approving
and deleting memorials, and rendering the QR codes printed on their plaques.

Configuration is read from MEMORIAL_* environment variables and an optional .env file.

Run without a subcommand to serve.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Apply pending migrations (outside local) and serve HTTP",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(cfg *config.Config, log *zerolog.Logger, _ *logger.LoggerService) error {
			return database.Migrate(cmd.Context(), log, cfg)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// withApp loads config and logging around fn and flushes telemetry after.
func withApp(fn func(cfg *config.Config, log *zerolog.Logger, ls *logger.LoggerService) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	if err := fn(cfg, &log, loggerService); err != nil {
		log.Error().Stack().Err(err).Msg("command failed")
		return err
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	return withApp(func(cfg *config.Config, log *zerolog.Logger, loggerService *logger.LoggerService) error {
		ctx := cmd.Context()

		if cfg.Primary.Env != "local" {
			if err := database.Migrate(ctx, log, cfg); err != nil {
				return errors.Wrap(err, "failed to migrate database")
			}
		}

		srv, err := server.New(cfg, log, loggerService)
		if err != nil {
			return errors.Wrap(err, "failed to initialize server")
		}

		repos := repository.NewRepositories(srv)
		services := service.NewServices(srv, repos)
		handlers := handler.NewHandlers(srv, services)

		srv.SetupHTTPServer(router.NewRouter(srv, handlers))

		serveErr := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		select {
		case <-ctx.Done():
			log.Info().Msg("shutdown signal received")
		case err := <-serveErr:
			if err != nil {
				return errors.Wrap(err, "server stopped")
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "server forced to shutdown")
		}

		log.Info().Msg("server exited properly")
		return nil
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
