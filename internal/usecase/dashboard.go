package usecase

import (
	"context"

	"FinCast/internal/domain/models"
	"FinCast/pkg/util"
)

// Dashboard assembles the index page summary.
type Dashboard struct {
	forecasts *ForecastService
}

func NewDashboard(f *ForecastService) *Dashboard {
	return &Dashboard{forecasts: f}
}

// NormalizeHorizon maps anything outside the offered horizons to the default.
func NormalizeHorizon(h int) int {
	if util.IntIn(h, models.DashboardHorizons) {
		return h
	}
	return models.DefaultHorizon
}

// Summary compares the final forecast for horizon with the last actual close.
func (d *Dashboard) Summary(ctx context.Context, horizon int) (models.DashboardSummary, error) {
	horizon = NormalizeHorizon(horizon)
	st := d.forecasts.State()
	if st == nil || st.Series == nil || st.Series.Len() == 0 {
		return models.DashboardSummary{}, models.ErrNotReady
	}

	table, err := d.forecasts.Forecast(ctx, horizon)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	final := table.Last()
	last := st.LastObservation()

	out := models.DashboardSummary{
		Horizon:       horizon,
		LastDate:      last.DS,
		LastActual:    last.Y,
		ForecastDate:  last.DS.AddDate(0, 0, horizon),
		ForecastPrice: final.YHat,
		ForecastLow:   final.YHatLower,
		ForecastHigh:  final.YHatUpper,
		Metrics:       st.Evaluation,
		TrainRows:     len(st.Split.Train),
		TestRows:      len(st.Split.Test),
		RunID:         st.RunID,
		ModelID:       st.ModelID,
	}
	if last.Y != 0 {
		out.PctChange = (final.YHat - last.Y) / last.Y * 100
	}
	return out, nil
}
