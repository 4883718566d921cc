package forecast

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"FinCast/internal/domain/models"
	domsvc "FinCast/internal/domain/service"
)

// ErrNegativePeriods is returned by Predict for a negative horizon.
var ErrNegativePeriods = errors.New("periods must be non-negative")

// Engine fits and evaluates additive regression models.
type Engine struct{}

// NewEngine returns a ready Engine.
func NewEngine() *Engine { return &Engine{} }

var _ domsvc.Forecaster = (*Engine)(nil)

// Fit estimates trend, changepoint and seasonal coefficients on train.
func (e *Engine) Fit(train models.ModelInput, cfg models.ModelConfig) (domsvc.Model, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(train) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 rows, got %d", models.ErrFit, len(train))
	}

	obs := make(models.ModelInput, len(train))
	copy(obs, train)
	sort.SliceStable(obs, func(i, j int) bool { return obs[i].DS.Before(obs[j].DS) })

	yScale := 0.0
	for i, o := range obs {
		if math.IsNaN(o.Y) || math.IsInf(o.Y, 0) {
			return nil, fmt.Errorf("%w: non-finite value at row %d (%s)", models.ErrFit, i, o.DS.Format(time.DateOnly))
		}
		yScale = math.Max(yScale, math.Abs(o.Y))
	}
	if yScale == 0 {
		yScale = 1
	}

	first, last := obs[0].DS, obs[len(obs)-1].DS
	if !last.After(first) {
		return nil, fmt.Errorf("%w: need at least 2 distinct dates", models.ErrFit)
	}

	m := &Model{
		Version:  modelVersion,
		Config:   cfg,
		Start:    first,
		SpanDays: last.Sub(first).Hours() / 24,
		YScale:   yScale,
		History:  obs.Dates(),

		TrainFingerprint: train.Fingerprint(cfg),
	}
	m.Changepoints = placeChangepoints(m, cfg)

	n, p := len(obs), m.numFeatures()
	x := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	row := make([]float64, p)
	for i, o := range obs {
		m.features(o.DS, row)
		x.SetRow(i, row)
		y.SetVec(i, o.Y/yScale)
	}

	var a mat.SymDense
	a.SymOuterK(1, x.T())
	for j, pen := range m.penalties() {
		a.SetSym(j, j, a.At(j, j)+pen)
	}
	var b mat.VecDense
	b.MulVec(x.T(), y)

	var chol mat.Cholesky
	if ok := chol.Factorize(&a); !ok {
		return nil, fmt.Errorf("%w: normal equations are not positive definite", models.ErrFit)
	}
	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, &b); err != nil {
		return nil, fmt.Errorf("%w: solve: %v", models.ErrFit, err)
	}
	m.Beta = make([]float64, p)
	for j := range m.Beta {
		m.Beta[j] = beta.AtVec(j)
	}

	var fitted mat.VecDense
	fitted.MulVec(x, &beta)
	residuals := make([]float64, n)
	for i := range residuals {
		residuals[i] = (y.AtVec(i) - fitted.AtVec(i)) * yScale
	}
	m.Sigma = stat.StdDev(residuals, nil)
	m.TrendSigma = trendSigma(m)

	if math.IsNaN(m.Sigma) || math.IsInf(m.Sigma, 0) {
		return nil, fmt.Errorf("%w: residual deviation is not finite", models.ErrFit)
	}
	return m, nil
}

// Predict returns one row per training date followed by periods consecutive
// days past the last training date.
func (e *Engine) Predict(dm domsvc.Model, periods int) (models.ForecastTable, error) {
	m, ok := dm.(*Model)
	if !ok || m == nil {
		return nil, fmt.Errorf("predict: unsupported model type %T", dm)
	}
	if periods < 0 {
		return nil, fmt.Errorf("predict: %w (got %d)", ErrNegativePeriods, periods)
	}

	z := distuv.UnitNormal.Quantile(0.5 + m.Config.IntervalWidth/2)
	end := m.TrainEnd()
	out := make(models.ForecastTable, 0, len(m.History)+periods)
	row := make([]float64, m.numFeatures())

	emit := func(ds time.Time, h float64) {
		yhat := m.predictOne(ds, row)
		spread := z * math.Hypot(m.Sigma, h*m.TrendSigma)
		out = append(out, models.ForecastRow{
			DS:        ds,
			YHat:      yhat,
			YHatLower: yhat - spread,
			YHatUpper: yhat + spread,
		})
	}
	for _, ds := range m.History {
		emit(ds, 0)
	}
	for i := 1; i <= periods; i++ {
		emit(end.AddDate(0, 0, i), float64(i))
	}
	return out, nil
}

func validateConfig(cfg models.ModelConfig) error {
	switch {
	case cfg.DailySeasonality:
		return fmt.Errorf("%w: daily seasonality requires sub-daily data", models.ErrFit)
	case !(cfg.IntervalWidth > 0 && cfg.IntervalWidth < 1):
		return fmt.Errorf("%w: interval_width must be in (0,1), got %v", models.ErrFit, cfg.IntervalWidth)
	case !(cfg.ChangepointPriorScale > 0):
		return fmt.Errorf("%w: changepoint_prior_scale must be positive, got %v", models.ErrFit, cfg.ChangepointPriorScale)
	case !(cfg.SeasonalityPriorScale > 0):
		return fmt.Errorf("%w: seasonality_prior_scale must be positive, got %v", models.ErrFit, cfg.SeasonalityPriorScale)
	case cfg.NChangepoints < 0:
		return fmt.Errorf("%w: n_changepoints must be non-negative", models.ErrFit)
	case !(cfg.ChangepointRange > 0 && cfg.ChangepointRange <= 1):
		return fmt.Errorf("%w: changepoint_range must be in (0,1]", models.ErrFit)
	case cfg.YearlyFourierOrder < 0 || cfg.WeeklyFourierOrder < 0:
		return fmt.Errorf("%w: fourier orders must be non-negative", models.ErrFit)
	}
	return nil
}

// placeChangepoints spreads potential changepoints uniformly over the first
// ChangepointRange of the history, at training dates.
func placeChangepoints(m *Model, cfg models.ModelConfig) []float64 {
	histSize := int(math.Floor(float64(len(m.History)) * cfg.ChangepointRange))
	n := cfg.NChangepoints
	if n+1 > histSize {
		n = histSize - 1
	}
	if n <= 0 {
		return nil
	}
	out := make([]float64, 0, n)
	step := float64(histSize-1) / float64(n)
	for i := 1; i <= n; i++ {
		idx := int(math.Round(float64(i) * step))
		out = append(out, m.scaledTime(m.History[idx]))
	}
	return out
}

// trendSigma is the per-day growth of the forecast band: the mean absolute
// changepoint slope change, in original units per day.
func trendSigma(m *Model) float64 {
	if len(m.Changepoints) == 0 {
		return 0
	}
	var sum float64
	for j := range m.Changepoints {
		sum += math.Abs(m.Beta[2+j])
	}
	return sum / float64(len(m.Changepoints)) * m.YScale / m.SpanDays
}
