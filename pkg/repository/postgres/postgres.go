package postgres

import (
	"context"
	"database/sql"
	_ "embed"

	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed schema.sql
var schemaSQL string

// Client is a MetricsRepository backed by PostgreSQL.
type Client struct {
	db *sql.DB
}

var _ interfaces.MetricsRepository = (*Client)(nil)

// New opens a connection pool for the given DSN and ensures the schema
// exists.
func New(ctx context.Context, dsn string) (*Client, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database")
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to ping database")
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return nil, goerr.Wrap(err, "failed to apply schema")
	}

	return &Client{db: db}, nil
}

// Close releases the connection pool.
func (x *Client) Close() error {
	if err := x.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close database")
	}
	return nil
}
