package config

import (
	"log/slog"

	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/infra"
	"github.com/k-morita/deployscope/pkg/infra/datadog"
	"github.com/urfave/cli/v3"
)

type Datadog struct {
	apiKey types.DatadogAPIKey `masq:"secret"`
	appKey types.DatadogAppKey `masq:"secret"`
}

func (x *Datadog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "datadog-api-key",
			Usage:       "Datadog API key (optional, disables incident sync when empty)",
			Category:    "Datadog",
			Destination: (*string)(&x.apiKey),
			Sources:     cli.EnvVars("DEPLOYSCOPE_DATADOG_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "datadog-app-key",
			Usage:       "Datadog application key",
			Category:    "Datadog",
			Destination: (*string)(&x.appKey),
			Sources:     cli.EnvVars("DEPLOYSCOPE_DATADOG_APP_KEY"),
		},
	}
}

func (x *Datadog) Enabled() bool {
	return x.apiKey != "" && x.appKey != ""
}

func (x Datadog) New(httpClient infra.HTTPClient) (*datadog.Client, error) {
	return datadog.New(x.apiKey, x.appKey, datadog.WithHTTPClient(httpClient))
}

func (x Datadog) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("apiKey.len", len(x.apiKey)),
		slog.Int("appKey.len", len(x.appKey)),
	)
}
