package forecast

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinCast/internal/domain/models"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func series(n int, f func(i int) float64) models.ModelInput {
	out := make(models.ModelInput, n)
	for i := range out {
		out[i] = models.Observation{DS: day0.AddDate(0, 0, i), Y: f(i)}
	}
	return out
}

func withValue(in models.ModelInput, i int, v float64) models.ModelInput {
	in[i].Y = v
	return in
}

func TestPredictCoversHistoryAndHorizon(t *testing.T) {
	train := series(120, func(i int) float64 {
		return 100 + 0.3*float64(i) + 4*math.Sin(2*math.Pi*float64(i)/7) + float64(i%5)
	})
	e := NewEngine()
	m, err := e.Fit(train, models.DefaultModelConfig())
	require.NoError(t, err)

	const periods = 30
	fc, err := e.Predict(m, periods)
	require.NoError(t, err)
	require.Len(t, fc, len(train)+periods)

	for i, row := range fc {
		assert.LessOrEqual(t, row.YHatLower, row.YHat, "row %d", i)
		assert.LessOrEqual(t, row.YHat, row.YHatUpper, "row %d", i)
		if i > 0 {
			assert.Equal(t, 24*time.Hour, row.DS.Sub(fc[i-1].DS), "gap before row %d", i)
		}
	}
	assert.True(t, fc[len(train)-1].DS.Equal(m.TrainEnd()))
	assert.True(t, fc.Last().DS.Equal(m.TrainEnd().AddDate(0, 0, periods)))
}

func TestPredictZeroPeriodsIsBackcastOnly(t *testing.T) {
	e := NewEngine()
	m, err := e.Fit(series(30, func(i int) float64 { return 50 + float64(i) }), models.DefaultModelConfig())
	require.NoError(t, err)

	fc, err := e.Predict(m, 0)
	require.NoError(t, err)
	assert.Len(t, fc, 30)

	_, err = e.Predict(m, -1)
	assert.ErrorIs(t, err, ErrNegativePeriods)
}

func TestPredictIsIdempotent(t *testing.T) {
	e := NewEngine()
	m, err := e.Fit(series(60, func(i int) float64 { return 10 + math.Sqrt(float64(i)) }), models.DefaultModelConfig())
	require.NoError(t, err)

	a, err := e.Predict(m, 14)
	require.NoError(t, err)
	b, err := e.Predict(m, 14)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPredictConcurrentReaders(t *testing.T) {
	e := NewEngine()
	m, err := e.Fit(series(60, func(i int) float64 { return 20 + float64(i%9) }), models.DefaultModelConfig())
	require.NoError(t, err)
	want, err := e.Predict(m, 7)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]models.ForecastTable, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = e.Predict(m, 7)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestFitTracksLinearTrend(t *testing.T) {
	train := series(200, func(i int) float64 { return 10 + 0.5*float64(i) })
	e := NewEngine()
	m, err := e.Fit(train, models.DefaultModelConfig())
	require.NoError(t, err)

	fc, err := e.Predict(m, 10)
	require.NoError(t, err)
	want := 10 + 0.5*float64(209)
	assert.InEpsilon(t, want, fc.Last().YHat, 0.02)
}

func TestFitFlatSeriesReproducesLevel(t *testing.T) {
	e := NewEngine()
	m, err := e.Fit(series(90, func(int) float64 { return 100 }), models.DefaultModelConfig())
	require.NoError(t, err)

	fc, err := e.Predict(m, 10)
	require.NoError(t, err)
	for _, row := range fc.Tail(10) {
		assert.InDelta(t, 100, row.YHat, 1e-4)
	}
}

func TestFitRejectsDegenerateInput(t *testing.T) {
	e := NewEngine()
	cfg := models.DefaultModelConfig()

	cases := map[string]models.ModelInput{
		"empty":      nil,
		"single row": series(1, func(int) float64 { return 1 }),
		"same date": {
			{DS: day0, Y: 1},
			{DS: day0, Y: 2},
		},
		"nan":  withValue(series(10, func(int) float64 { return 1 }), 4, math.NaN()),
		"+inf": withValue(series(10, func(int) float64 { return 1 }), 9, math.Inf(1)),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := e.Fit(in, cfg)
			assert.True(t, errors.Is(err, models.ErrFit), "got %v", err)
		})
	}
}

func TestFitRejectsInvalidConfig(t *testing.T) {
	e := NewEngine()
	train := series(20, func(i int) float64 { return float64(i + 1) })

	mutate := map[string]func(*models.ModelConfig){
		"daily seasonality":  func(c *models.ModelConfig) { c.DailySeasonality = true },
		"interval width 0":   func(c *models.ModelConfig) { c.IntervalWidth = 0 },
		"interval width 1":   func(c *models.ModelConfig) { c.IntervalWidth = 1 },
		"non-positive scale": func(c *models.ModelConfig) { c.ChangepointPriorScale = 0 },
		"range above one":    func(c *models.ModelConfig) { c.ChangepointRange = 1.5 },
	}
	for name, fn := range mutate {
		t.Run(name, func(t *testing.T) {
			cfg := models.DefaultModelConfig()
			fn(&cfg)
			_, err := e.Fit(train, cfg)
			assert.ErrorIs(t, err, models.ErrFit)
		})
	}
}

func TestIntervalWidthControlsBand(t *testing.T) {
	train := series(90, func(i int) float64 { return 100 + float64((i*7)%11) })
	e := NewEngine()

	narrowCfg := models.DefaultModelConfig()
	narrowCfg.IntervalWidth = 0.5
	narrow, err := e.Fit(train, narrowCfg)
	require.NoError(t, err)
	wide, err := e.Fit(train, models.DefaultModelConfig())
	require.NoError(t, err)

	a, _ := e.Predict(narrow, 5)
	b, _ := e.Predict(wide, 5)
	last := len(a) - 1
	assert.Less(t, a[last].YHatUpper-a[last].YHatLower, b[last].YHatUpper-b[last].YHatLower)
}

func TestFutureBandWidens(t *testing.T) {
	train := series(150, func(i int) float64 {
		if i < 75 {
			return 100 + float64(i)
		}
		return 175 - 0.5*float64(i-75) + float64(i%3)
	})
	e := NewEngine()
	m, err := e.Fit(train, models.DefaultModelConfig())
	require.NoError(t, err)
	fc, err := e.Predict(m, 60)
	require.NoError(t, err)

	near := fc[len(train)]
	far := fc.Last()
	assert.Greater(t, far.YHatUpper-far.YHatLower, near.YHatUpper-near.YHatLower)
}
