package config

import (
	"log/slog"

	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

type GitHubApp struct {
	id         types.GitHubAppID
	installID  types.GitHubAppInstallID
	privateKey types.GitHubAppPrivateKey `masq:"secret"`
}

func (x *GitHubApp) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Category:    "GitHub App",
			Destination: (*int64)(&x.id),
			Sources:     cli.EnvVars("DEPLOYSCOPE_GITHUB_APP_ID"),
			Required:    true,
		},
		&cli.Int64Flag{
			Name:        "github-app-install-id",
			Usage:       "GitHub App Installation ID",
			Category:    "GitHub App",
			Destination: (*int64)(&x.installID),
			Sources:     cli.EnvVars("DEPLOYSCOPE_GITHUB_APP_INSTALL_ID"),
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App Private Key",
			Category:    "GitHub App",
			Destination: (*string)(&x.privateKey),
			Sources:     cli.EnvVars("DEPLOYSCOPE_GITHUB_APP_PRIVATE_KEY"),
			Required:    true,
		},
	}
}

func (x GitHubApp) New() (*github.Client, error) {
	return github.New(x.id, x.installID, x.privateKey)
}

func (x GitHubApp) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("ID", int64(x.id)),
		slog.Int64("InstallID", int64(x.installID)),
		slog.Int("privateKey.len", len(x.privateKey)),
	)
}
