package clickhouse

import "fmt"

// Schema returns the idempotent DDL for the run archive tables in database.
func Schema(database string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.runs (
			run_id String,
			model_id String,
			train_rows UInt32,
			test_rows UInt32,
			mae Float64,
			rmse Float64,
			mape Float64,
			directional_accuracy Float64,
			created_at DateTime64(3, 'UTC')
		) ENGINE = MergeTree ORDER BY (created_at, run_id)`, database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.series (
			run_id String,
			ds Date,
			y Float64
		) ENGINE = MergeTree ORDER BY (run_id, ds)`, database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.evaluations (
			run_id String,
			ds Date,
			actual Float64,
			predicted Float64
		) ENGINE = MergeTree ORDER BY (run_id, ds)`, database),
	}
}
