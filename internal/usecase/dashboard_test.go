package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinCast/internal/services/forecast"
	"FinCast/pkg/cache"
	"FinCast/pkg/logger"
)

func TestNormalizeHorizon(t *testing.T) {
	for _, h := range []int{7, 30, 60, 90} {
		assert.Equal(t, h, NormalizeHorizon(h))
	}
	for _, h := range []int{0, -7, 8, 365} {
		assert.Equal(t, 30, NormalizeHorizon(h))
	}
}

func TestDashboardSummary(t *testing.T) {
	eng := forecast.NewEngine()
	st := fittedState(t, eng)
	mc := cache.NewMemoryCache()
	defer mc.Close()
	d := NewDashboard(NewForecastService(st, eng, mc, time.Hour, nil, newMetrics(), logger.Nop()))

	sum, err := d.Summary(context.Background(), 60)
	require.NoError(t, err)

	table, err := eng.Predict(st.Model, 60)
	require.NoError(t, err)
	last := st.LastObservation()

	assert.Equal(t, 60, sum.Horizon)
	assert.Equal(t, last.DS, sum.LastDate)
	assert.Equal(t, last.Y, sum.LastActual)
	assert.Equal(t, last.DS.AddDate(0, 0, 60), sum.ForecastDate)
	assert.Equal(t, table.Last().YHat, sum.ForecastPrice)
	assert.LessOrEqual(t, sum.ForecastLow, sum.ForecastPrice)
	assert.GreaterOrEqual(t, sum.ForecastHigh, sum.ForecastPrice)
	assert.InDelta(t, (sum.ForecastPrice-last.Y)/last.Y*100, sum.PctChange, 1e-9)
	assert.Equal(t, st.Evaluation.MAE, sum.Metrics.MAE)
	assert.Equal(t, 100, sum.TrainRows)
	assert.Equal(t, 20, sum.TestRows)

	fallback, err := d.Summary(context.Background(), 45)
	require.NoError(t, err)
	assert.Equal(t, 30, fallback.Horizon)
}
