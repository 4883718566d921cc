package repository

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinCast/internal/domain/models"
	domrepo "FinCast/internal/domain/repository"
	pkgch "FinCast/pkg/clickhouse"
	"FinCast/pkg/logger"
)

// Runs against a live server when FINCAST_CLICKHOUSE_HOST is set.
func TestClickHouseArchiveIntegration(t *testing.T) {
	host := os.Getenv("FINCAST_CLICKHOUSE_HOST")
	if host == "" || testing.Short() {
		t.Skip("FINCAST_CLICKHOUSE_HOST not set")
	}
	port := 9000
	if v := os.Getenv("FINCAST_CLICKHOUSE_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		require.NoError(t, err)
		port = p
	}

	ctx := context.Background()
	client, err := pkgch.NewClient(pkgch.WithHost(host), pkgch.WithPort(port), pkgch.WithDatabase("default"))
	require.NoError(t, err)
	defer client.Close()
	require.NoError(t, client.InitSchema(ctx, pkgch.Schema("fincast_test")))

	client2, err := pkgch.NewClient(pkgch.WithHost(host), pkgch.WithPort(port), pkgch.WithDatabase("fincast_test"))
	require.NoError(t, err)
	defer client2.Close()

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	input := models.ModelInput{{DS: day, Y: 1}, {DS: day.AddDate(0, 0, 1), Y: 2}, {DS: day.AddDate(0, 0, 2), Y: 3}}
	run := domrepo.ArchivedRun{
		RunID:   uuid.NewString(),
		ModelID: "m",
		Input:   input,
		Evaluation: models.Evaluation{
			MAE:  0.5,
			Rows: []models.EvaluationRow{{DS: day.AddDate(0, 0, 2), Actual: 3, Predicted: 2.5}},
		},
		TrainRows: 2,
		TestRows:  1,
	}
	a := NewClickHouseArchive(client2, logger.Nop())
	require.NoError(t, a.ArchiveRun(ctx, run))

	var n uint64
	require.NoError(t, client2.DB().QueryRowContext(ctx,
		"SELECT count() FROM fincast_test.series WHERE run_id = ?", run.RunID).Scan(&n))
	assert.EqualValues(t, 3, n)

	var mae float64
	require.NoError(t, client2.DB().QueryRowContext(ctx,
		"SELECT mae FROM fincast_test.runs WHERE run_id = ?", run.RunID).Scan(&mae))
	assert.Equal(t, 0.5, mae)
}
