package models

import "time"

// ForecastRow is one predicted point with its uncertainty band.
type ForecastRow struct {
	DS        time.Time `json:"ds"`
	YHat      float64   `json:"yhat"`
	YHatLower float64   `json:"yhat_lower"`
	YHatUpper float64   `json:"yhat_upper"`
}

// ForecastTable covers every training date followed by the requested future
// dates, ascending.
type ForecastTable []ForecastRow

// Tail returns the last n rows (all rows when n exceeds the length).
func (t ForecastTable) Tail(n int) ForecastTable {
	if n <= 0 {
		return ForecastTable{}
	}
	if n >= len(t) {
		return t
	}
	return t[len(t)-n:]
}

// Last returns the final row. The table must not be empty.
func (t ForecastTable) Last() ForecastRow { return t[len(t)-1] }

// ModelConfig enumerates the forecaster's fit options.
type ModelConfig struct {
	YearlySeasonality     bool    `yaml:"yearly_seasonality" json:"yearly_seasonality" default:"true"`
	WeeklySeasonality     bool    `yaml:"weekly_seasonality" json:"weekly_seasonality" default:"true"`
	DailySeasonality      bool    `yaml:"daily_seasonality" json:"daily_seasonality"`
	IntervalWidth         float64 `yaml:"interval_width" json:"interval_width" default:"0.95"`
	ChangepointPriorScale float64 `yaml:"changepoint_prior_scale" json:"changepoint_prior_scale" default:"0.05"`
	NChangepoints         int     `yaml:"n_changepoints" json:"n_changepoints" default:"25"`
	ChangepointRange      float64 `yaml:"changepoint_range" json:"changepoint_range" default:"0.8"`
	SeasonalityPriorScale float64 `yaml:"seasonality_prior_scale" json:"seasonality_prior_scale" default:"10"`
	YearlyFourierOrder    int     `yaml:"yearly_fourier_order" json:"yearly_fourier_order" default:"10"`
	WeeklyFourierOrder    int     `yaml:"weekly_fourier_order" json:"weekly_fourier_order" default:"3"`
}

// DefaultModelConfig returns the configuration used when none is supplied.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		YearlySeasonality:     true,
		WeeklySeasonality:     true,
		DailySeasonality:      false,
		IntervalWidth:         0.95,
		ChangepointPriorScale: 0.05,
		NChangepoints:         25,
		ChangepointRange:      0.8,
		SeasonalityPriorScale: 10,
		YearlyFourierOrder:    10,
		WeeklyFourierOrder:    3,
	}
}
