package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"FinCast/internal/domain/models"
	domsvc "FinCast/internal/domain/service"
	"FinCast/pkg/util"
)

// flatTolerance is the relative step size below which a move counts as flat.
const flatTolerance = 1e-6

// Evaluator scores a fitted model against held-out observations.
type Evaluator struct {
	forecaster domsvc.Forecaster
}

func NewEvaluator(f domsvc.Forecaster) *Evaluator {
	return &Evaluator{forecaster: f}
}

// Evaluate forecasts far enough past the training end to reach the last test
// date and joins the forecast to the test rows by date.
func (e *Evaluator) Evaluate(ctx context.Context, m domsvc.Model, test models.ModelInput) (models.Evaluation, error) {
	if len(test) < 2 {
		return models.Evaluation{}, fmt.Errorf("%w: need at least 2 test rows, got %d", models.ErrInsufficientData, len(test))
	}
	if err := ctx.Err(); err != nil {
		return models.Evaluation{}, err
	}

	end := m.TrainEnd()
	periods := daysBetween(end, test[len(test)-1].DS)
	if periods <= 0 {
		return models.Evaluation{}, fmt.Errorf("%w: test ends %s, training ends %s",
			models.ErrCalendarMismatch, util.FormatDate(test[len(test)-1].DS), util.FormatDate(end))
	}

	fc, err := e.forecaster.Predict(m, periods)
	if err != nil {
		return models.Evaluation{}, fmt.Errorf("evaluate: %w", err)
	}

	future := make(map[int64]float64, periods)
	for _, r := range fc.Tail(periods) {
		future[r.DS.Unix()] = r.YHat
	}

	rows := make([]models.EvaluationRow, len(test))
	for i, o := range test {
		p, ok := future[o.DS.Unix()]
		if !ok {
			return models.Evaluation{}, fmt.Errorf("%w: no forecast for %s", models.ErrCalendarMismatch, util.FormatDate(o.DS))
		}
		rows[i] = models.EvaluationRow{DS: o.DS, Actual: o.Y, Predicted: p}
	}
	return ComputeMetrics(rows)
}

// ComputeMetrics returns MAE, RMSE, MAPE (percent) and directional accuracy
// (percent of the n-1 steps whose up/flat/down class matches).
func ComputeMetrics(rows []models.EvaluationRow) (models.Evaluation, error) {
	n := len(rows)
	if n < 2 {
		return models.Evaluation{}, fmt.Errorf("%w: need at least 2 rows, got %d", models.ErrInsufficientData, n)
	}

	var absSum, sqSum, pctSum float64
	for _, r := range rows {
		if r.Actual == 0 {
			return models.Evaluation{}, fmt.Errorf("%w: actual is zero on %s", models.ErrDivisionByZero, util.FormatDate(r.DS))
		}
		diff := r.Actual - r.Predicted
		absSum += math.Abs(diff)
		sqSum += diff * diff
		pctSum += math.Abs(diff / r.Actual)
	}

	hits := 0
	for i := 1; i < n; i++ {
		if direction(rows[i-1].Actual, rows[i].Actual) == direction(rows[i-1].Predicted, rows[i].Predicted) {
			hits++
		}
	}

	out := make([]models.EvaluationRow, n)
	copy(out, rows)
	return models.Evaluation{
		MAE:                 absSum / float64(n),
		RMSE:                math.Sqrt(sqSum / float64(n)),
		MAPE:                pctSum / float64(n) * 100,
		DirectionalAccuracy: float64(hits) / float64(n-1) * 100,
		Rows:                out,
	}, nil
}

// direction classifies a step as -1, 0 or +1.
func direction(prev, cur float64) int {
	d := cur - prev
	scale := math.Max(1, math.Max(math.Abs(prev), math.Abs(cur)))
	switch {
	case math.Abs(d) <= flatTolerance*scale:
		return 0
	case d > 0:
		return 1
	default:
		return -1
	}
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
