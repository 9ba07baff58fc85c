package config

import (
	"context"
	"log/slog"

	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/repository/memory"
	"github.com/k-morita/deployscope/pkg/repository/postgres"
	"github.com/urfave/cli/v3"
)

type Postgres struct {
	dsn string `masq:"secret"`
}

func (x *Postgres) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "postgres-dsn",
			Usage:       "PostgreSQL DSN (optional, falls back to in-memory store)",
			Category:    "Database",
			Sources:     cli.EnvVars("DEPLOYSCOPE_POSTGRES_DSN"),
			Destination: &x.dsn,
		},
	}
}

func (x *Postgres) Enabled() bool {
	return x.dsn != ""
}

// NewRepository opens the PostgreSQL store, or an in-memory store when no DSN
// is configured.
func (x *Postgres) NewRepository(ctx context.Context) (interfaces.MetricsRepository, func() error, error) {
	if !x.Enabled() {
		return memory.New(), func() error { return nil }, nil
	}

	client, err := postgres.New(ctx, x.dsn)
	if err != nil {
		return nil, nil, err
	}

	return client, client.Close, nil
}

func (x Postgres) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("DSN.len", len(x.dsn)),
	)
}
