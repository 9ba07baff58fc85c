package postgres_test

import (
	"context"
	"testing"

	"github.com/k-morita/deployscope/pkg/repository/postgres"
	"github.com/k-morita/deployscope/pkg/repository/testhelper"
	"github.com/k-morita/deployscope/pkg/utils/testutil"
	"github.com/m-mizutani/gt"
)

func TestPostgresRepository(t *testing.T) {
	dsn := testutil.GetEnvOrSkip(t, "TEST_POSTGRES_DSN")

	ctx := context.Background()
	client := gt.R1(postgres.New(ctx, dsn)).NoError(t)
	defer client.Close()

	testhelper.TestAll(t, client)
}
