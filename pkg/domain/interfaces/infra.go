package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . BigQuery

import (
	"context"

	"cloud.google.com/go/bigquery"
)

// BigQuery receives exported metric rows. The schema is inferred from the row
// type and merged with the live table schema on drift.
type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}
