package cli

import (
	"context"
	"log/slog"

	"github.com/k-morita/deployscope/pkg/cli/config"
	"github.com/k-morita/deployscope/pkg/usecase"
	"github.com/k-morita/deployscope/pkg/utils/logging"
	"github.com/m-mizutani/gots/slice"

	"github.com/urfave/cli/v3"
)

func syncCommand() *cli.Command {
	var (
		pg        config.Postgres
		githubApp config.GitHubApp
		datadog   config.Datadog
		sentry    config.Sentry
		bigQuery  config.BigQuery
	)

	return &cli.Command{
		Name:  "sync",
		Usage: "Run one sync pass over all configured repositories",
		Flags: slice.Flatten(
			pg.Flags(),
			githubApp.Flags(),
			datadog.Flags(),
			bigQuery.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting sync",
				slog.Any("Postgres", pg),
				slog.Any("GitHubApp", githubApp),
				slog.Any("Datadog", datadog),
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

			return usecase.New(clients).SyncAll(ctx)
		},
	}
}

func calcCommand() *cli.Command {
	var (
		pg        config.Postgres
		githubApp config.GitHubApp
		datadog   config.Datadog
		bigQuery  config.BigQuery
	)

	return &cli.Command{
		Name:  "calc",
		Usage: "Run the lead-time attribution pass over unprocessed deployments",
		Flags: slice.Flatten(
			pg.Flags(),
			githubApp.Flags(),
			datadog.Flags(),
			bigQuery.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			clients, closeStore, err := buildClients(ctx, &pg, &githubApp, &datadog, &bigQuery)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeStore(); err != nil {
					logging.Default().Warn("failed to close store", slog.Any("error", err))
				}
			}()

			return usecase.New(clients).CalculateLeadTimes(ctx)
		},
	}
}
