package cli

import (
	"context"
	"net/http"

	"github.com/k-morita/deployscope/pkg/cli/config"
	"github.com/k-morita/deployscope/pkg/infra"
)

// buildClients assembles the collaborator container from the shared config
// blocks. The returned closer releases the store connection.
func buildClients(ctx context.Context, pg *config.Postgres, ghApp *config.GitHubApp, dd *config.Datadog, bigQuery *config.BigQuery) (*infra.Clients, func() error, error) {
	store, closeStore, err := pg.NewRepository(ctx)
	if err != nil {
		return nil, nil, err
	}

	gh, err := ghApp.New()
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}

	// The incident source shares the container's HTTP client
	httpClient := http.DefaultClient
	options := []infra.Option{
		infra.WithStore(store),
		infra.WithCommitSource(gh),
		infra.WithDeploymentSource(gh),
		infra.WithPullRequestSource(gh),
		infra.WithHTTPClient(httpClient),
	}

	if dd.Enabled() {
		ddClient, err := dd.New(httpClient)
		if err != nil {
			_ = closeStore()
			return nil, nil, err
		}
		options = append(options, infra.WithIncidentSource(ddClient))
	}

	if bqClient, err := bigQuery.NewClient(ctx); err != nil {
		_ = closeStore()
		return nil, nil, err
	} else if bqClient != nil {
		options = append(options, infra.WithBigQuery(bqClient))
	}

	return infra.New(options...), closeStore, nil
}
