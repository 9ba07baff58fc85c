package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/k-morita/deployscope/pkg/cli/config"
	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"

	"github.com/urfave/cli/v3"
)

func repoCommand() *cli.Command {
	return &cli.Command{
		Name:  "repo",
		Usage: "Manage observed repositories",
		Commands: []*cli.Command{
			repoAddCommand(),
			repoListCommand(),
		},
	}
}

func repoAddCommand() *cli.Command {
	var (
		url          string
		serviceName  string
		workflowFile string

		pg config.Postgres
	)
	addFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "url",
			Usage:       "Repository URL (https or git@ form)",
			Destination: &url,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "service",
			Usage:       "Incident-management service name",
			Destination: &serviceName,
		},
		&cli.StringFlag{
			Name:        "workflow",
			Usage:       "Deployment workflow file name",
			Destination: &workflowFile,
			Value:       "deploy.yml",
		},
	}

	return &cli.Command{
		Name:  "add",
		Usage: "Register a repository for observation",
		Flags: slice.Flatten(
			addFlags,
			pg.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := &model.RepositoryConfig{
				URL:          url,
				ServiceName:  serviceName,
				WorkflowFile: workflowFile,
			}

			owner, repo, err := cfg.OwnerRepo()
			if err != nil {
				return goerr.Wrap(err, "cannot register repository")
			}
			cfg.ID = types.RepoID(owner + "/" + repo)

			store, closeStore, err := pg.NewRepository(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeStore(); err != nil {
					logging.Default().Warn("failed to close store", slog.Any("error", err))
				}
			}()

			if err := store.SaveRepositoryConfig(ctx, cfg); err != nil {
				return err
			}

			logging.Default().Info("registered repository", slog.Any("repoID", cfg.ID))
			return nil
		},
	}
}

func repoListCommand() *cli.Command {
	var pg config.Postgres

	return &cli.Command{
		Name:  "list",
		Usage: "List observed repositories",
		Flags: pg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			store, closeStore, err := pg.NewRepository(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeStore(); err != nil {
					logging.Default().Warn("failed to close store", slog.Any("error", err))
				}
			}()

			configs, err := store.ListRepositoryConfigs(ctx)
			if err != nil {
				return err
			}

			for _, cfg := range configs {
				fmt.Printf("%s\tservice=%s\tworkflow=%s\n", cfg.ID, cfg.ServiceName, cfg.WorkflowFile)
			}
			return nil
		},
	}
}
