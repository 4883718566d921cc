package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domrepo "FinCast/internal/domain/repository"
	pkgch "FinCast/pkg/clickhouse"
	applogger "FinCast/pkg/logger"
)

// ClickHouseArchive stores every run's input series, evaluation rows and
// summary metrics.
type ClickHouseArchive struct {
	db       *sql.DB
	database string
	l        *applogger.Logger
}

var _ domrepo.RunArchive = (*ClickHouseArchive)(nil)

func NewClickHouseArchive(ch *pkgch.Client, l *applogger.Logger) *ClickHouseArchive {
	return &ClickHouseArchive{db: ch.DB(), database: ch.Database(), l: l}
}

func (a *ClickHouseArchive) ArchiveRun(ctx context.Context, run domrepo.ArchivedRun) error {
	start := time.Now()

	if err := a.batch(ctx, "series", "(run_id, ds, y)", len(run.Input), func(stmt *sql.Stmt, i int) error {
		o := run.Input[i]
		_, err := stmt.ExecContext(ctx, run.RunID, o.DS, o.Y)
		return err
	}); err != nil {
		return err
	}

	rows := run.Evaluation.Rows
	if err := a.batch(ctx, "evaluations", "(run_id, ds, actual, predicted)", len(rows), func(stmt *sql.Stmt, i int) error {
		_, err := stmt.ExecContext(ctx, run.RunID, rows[i].DS, rows[i].Actual, rows[i].Predicted)
		return err
	}); err != nil {
		return err
	}

	ev := run.Evaluation
	q := fmt.Sprintf(`INSERT INTO %s.runs
		(run_id, model_id, train_rows, test_rows, mae, rmse, mape, directional_accuracy, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, a.database)
	if _, err := a.db.ExecContext(ctx, q,
		run.RunID, run.ModelID, uint32(run.TrainRows), uint32(run.TestRows),
		ev.MAE, ev.RMSE, ev.MAPE, ev.DirectionalAccuracy, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if a.l != nil {
		a.l.Info("run archived",
			applogger.String("run_id", run.RunID),
			applogger.Int("series_rows", len(run.Input)),
			applogger.Int("evaluation_rows", len(rows)),
			applogger.Duration("took_ms", time.Since(start)))
	}
	return nil
}

// batch sends n rows in one block using the driver's prepared-insert batching.
func (a *ClickHouseArchive) batch(ctx context.Context, table, cols string, n int, exec func(*sql.Stmt, int) error) error {
	if n == 0 {
		return nil
	}
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", table, err)
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s.%s %s", a.database, table, cols))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%s: prepare: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%s: append row %d: %w", table, i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: send: %w", table, err)
	}
	return nil
}

// Close is a no-op; the client is owned by the caller.
func (a *ClickHouseArchive) Close() error {
	return nil
}
