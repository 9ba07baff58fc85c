package cli

import (
	"context"
	"time"

	"github.com/k-morita/deployscope/pkg/cli/config"
	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/usecase"
	"github.com/k-morita/deployscope/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"

	"github.com/urfave/cli/v3"

	"log/slog"
)

func exportCommand() *cli.Command {
	var (
		start string
		end   string

		pg        config.Postgres
		githubApp config.GitHubApp
		datadog   config.Datadog
		bigQuery  config.BigQuery
	)
	exportFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "start",
			Usage:       "Report range start (YYYY-MM-DD, optional)",
			Destination: &start,
		},
		&cli.StringFlag{
			Name:        "end",
			Usage:       "Report range end (YYYY-MM-DD, optional)",
			Destination: &end,
		},
	}

	return &cli.Command{
		Name:  "export",
		Usage: "Build the organization report and append it to BigQuery",
		Flags: slice.Flatten(
			exportFlags,
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

			if clients.BigQuery() == nil {
				return goerr.New("BigQuery client is required (project ID and dataset ID must be set)")
			}

			scope := &model.ReportScope{}
			if start != "" {
				t, err := time.Parse("2006-01-02", start)
				if err != nil {
					return goerr.Wrap(err, "invalid start date", goerr.V("start", start))
				}
				scope.Start = &t
			}
			if end != "" {
				t, err := time.Parse("2006-01-02", end)
				if err != nil {
					return goerr.Wrap(err, "invalid end date", goerr.V("end", end))
				}
				scope.End = &t
			}

			return usecase.New(clients).ExportReport(ctx, scope)
		},
	}
}
