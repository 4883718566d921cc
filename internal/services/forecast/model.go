package forecast

import (
	"math"
	"time"

	"FinCast/internal/domain/models"
	domsvc "FinCast/internal/domain/service"
)

const (
	modelVersion = 1

	yearlyPeriodDays = 365.25
	weeklyPeriodDays = 7.0

	// noiseVariance is the assumed observation variance on the scaled series;
	// it converts prior scales into ridge penalties.
	noiseVariance   = 0.01
	trendPriorScale = 5.0
)

// Model is a fitted additive trend + seasonality regression. It is never
// mutated after Fit or Load and may be shared across goroutines.
type Model struct {
	Version      int                `json:"version"`
	Config       models.ModelConfig `json:"config"`
	Start        time.Time          `json:"start"`
	SpanDays     float64            `json:"span_days"`
	YScale       float64            `json:"y_scale"`
	Changepoints []float64          `json:"changepoints"`
	Beta         []float64          `json:"beta"`
	Sigma        float64            `json:"sigma"`
	TrendSigma   float64            `json:"trend_sigma"`
	History      []time.Time        `json:"history"`
	// TrainFingerprint is ModelInput.Fingerprint of the training input.
	TrainFingerprint string `json:"train_fingerprint"`
}

var _ domsvc.Model = (*Model)(nil)

// TrainEnd returns the last training date.
func (m *Model) TrainEnd() time.Time { return m.History[len(m.History)-1] }

// TrainSize returns the number of training rows.
func (m *Model) TrainSize() int { return len(m.History) }

// Fingerprint returns the training input fingerprint recorded at fit time.
func (m *Model) Fingerprint() string { return m.TrainFingerprint }

func (m *Model) numFeatures() int {
	return numFeatures(m.Config, len(m.Changepoints))
}

func numFeatures(cfg models.ModelConfig, changepoints int) int {
	p := 2 + changepoints
	if cfg.YearlySeasonality {
		p += 2 * cfg.YearlyFourierOrder
	}
	if cfg.WeeklySeasonality {
		p += 2 * cfg.WeeklyFourierOrder
	}
	return p
}

// scaledTime maps a date onto the training span: 0 at the first training
// date, 1 at the last.
func (m *Model) scaledTime(ds time.Time) float64 {
	return ds.Sub(m.Start).Hours() / 24 / m.SpanDays
}

// features writes the design row for ds into dst (len == numFeatures).
func (m *Model) features(ds time.Time, dst []float64) {
	t := m.scaledTime(ds)
	dst[0] = 1
	dst[1] = t
	i := 2
	for _, s := range m.Changepoints {
		dst[i] = math.Max(t-s, 0)
		i++
	}
	days := float64(ds.Unix()) / 86400
	if m.Config.YearlySeasonality {
		i = fourier(days, yearlyPeriodDays, m.Config.YearlyFourierOrder, dst, i)
	}
	if m.Config.WeeklySeasonality {
		fourier(days, weeklyPeriodDays, m.Config.WeeklyFourierOrder, dst, i)
	}
}

func fourier(days, period float64, order int, dst []float64, at int) int {
	for k := 1; k <= order; k++ {
		x := 2 * math.Pi * float64(k) * days / period
		dst[at] = math.Sin(x)
		dst[at+1] = math.Cos(x)
		at += 2
	}
	return at
}

// penalties returns the ridge penalty for every design column. The intercept
// is left unpenalised so a constant series is reproduced exactly.
func (m *Model) penalties() []float64 {
	p := make([]float64, m.numFeatures())
	p[1] = noiseVariance / (trendPriorScale * trendPriorScale)
	i := 2
	cp := noiseVariance / (m.Config.ChangepointPriorScale * m.Config.ChangepointPriorScale)
	for range m.Changepoints {
		p[i] = cp
		i++
	}
	seasonal := noiseVariance / (m.Config.SeasonalityPriorScale * m.Config.SeasonalityPriorScale)
	for ; i < len(p); i++ {
		p[i] = seasonal
	}
	return p
}

// predictOne returns the point estimate for ds in original units.
func (m *Model) predictOne(ds time.Time, row []float64) float64 {
	m.features(ds, row)
	var y float64
	for j, b := range m.Beta {
		y += b * row[j]
	}
	return y * m.YScale
}
