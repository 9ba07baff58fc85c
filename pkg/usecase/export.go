package usecase

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/utils/logging"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
)

// reportRawRecord is the BigQuery row shape of one exported report.
// Timestamp is UnixMicro for partitioning.
type reportRawRecord struct {
	Report    model.Report
	Timestamp int64
}

// ExportReport builds the report for the given scope and appends it to the
// configured BigQuery table. No-op when BigQuery is not configured.
func (x *UseCase) ExportReport(ctx context.Context, scope *model.ReportScope) error {
	if x.clients.BigQuery() == nil {
		return nil
	}

	report, err := x.BuildReport(ctx, scope)
	if err != nil {
		return err
	}

	record := &reportRawRecord{
		Report:    *report,
		Timestamp: logging.CtxTime(ctx).UnixMicro(),
	}

	schema, err := createOrUpdateBigQueryTable(ctx, x.clients.BigQuery(), record)
	if err != nil {
		return err
	}

	if err := x.clients.BigQuery().Insert(ctx, schema, record); err != nil {
		return goerr.Wrap(err, "failed to insert report to BigQuery")
	}

	return nil
}

// createOrUpdateBigQueryTable infers the row schema and reconciles it with
// the live table: missing table is created, drifted schema is merged.
func createOrUpdateBigQueryTable(ctx context.Context, bq interfaces.BigQuery, record any) (bigquery.Schema, error) {
	schema, err := bqs.Infer(record)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer report schema")
	}

	metaData, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get BigQuery table metadata")
	}
	if metaData == nil {
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{
			Schema: schema,
			TimePartitioning: &bigquery.TimePartitioning{
				Type: bigquery.MonthPartitioningType,
			},
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to create BigQuery table")
		}

		return schema, nil
	}

	if bqs.Equal(metaData.Schema, schema) {
		return schema, nil
	}

	mergedSchema, err := bqs.Merge(metaData.Schema, schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to merge BigQuery schema")
	}
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{
		Schema: mergedSchema,
	}, metaData.ETag); err != nil {
		return nil, goerr.Wrap(err, "failed to update BigQuery table")
	}

	return mergedSchema, nil
}
