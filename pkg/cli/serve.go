package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/k-morita/deployscope/pkg/cli/config"
	"github.com/k-morita/deployscope/pkg/controller/server"
	"github.com/k-morita/deployscope/pkg/usecase"
	"github.com/k-morita/deployscope/pkg/utils/errutil"
	"github.com/k-morita/deployscope/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr         string
		syncInterval time.Duration

		pg        config.Postgres
		githubApp config.GitHubApp
		datadog   config.Datadog
		bigQuery  config.BigQuery
		sentry    config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("DEPLOYSCOPE_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "sync-interval",
			Usage:       "Interval between background sync passes (0 disables)",
			Value:       0,
			Sources:     cli.EnvVars("DEPLOYSCOPE_SYNC_INTERVAL"),
			Destination: &syncInterval,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			pg.Flags(),
			githubApp.Flags(),
			datadog.Flags(),
			bigQuery.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("SyncInterval", syncInterval),
				slog.Any("Postgres", pg),
				slog.Any("GitHubApp", githubApp),
				slog.Any("Datadog", datadog),
				slog.Any("BigQuery", bigQuery),
				slog.Any("Sentry", sentry),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}

			clients, closeStore, err := buildClients(ctx, &pg, &githubApp, &datadog, &bigQuery)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeStore(); err != nil {
					logging.Default().Warn("failed to close store", slog.Any("error", err))
				}
			}()

			uc := usecase.New(clients)
			s := server.New(uc)

			if syncInterval > 0 {
				syncCtx, cancel := context.WithCancel(ctx)
				defer cancel()
				go runSyncLoop(syncCtx, uc, syncInterval)
			}

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}

func runSyncLoop(ctx context.Context, uc *usecase.UseCase, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := uc.SyncAll(ctx); err != nil {
			errutil.HandleError(ctx, "sync pass failed", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
