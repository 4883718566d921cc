package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FinCast/internal/domain/models"
	drepo "FinCast/internal/domain/repository"
	domsvc "FinCast/internal/domain/service"
	"FinCast/pkg/cache"
	"FinCast/pkg/logger"
)

// ForecastService serves forecasts of the run's model, memoized per horizon.
type ForecastService struct {
	state      *State
	forecaster domsvc.Forecaster
	cache      cache.Service
	ttl        time.Duration
	events     drepo.EventPublisher
	metrics    drepo.Metrics
	log        *logger.Logger
}

func NewForecastService(
	state *State,
	forecaster domsvc.Forecaster,
	c cache.Service,
	ttl time.Duration,
	events drepo.EventPublisher,
	metrics drepo.Metrics,
	log *logger.Logger,
) *ForecastService {
	return &ForecastService{
		state:      state,
		forecaster: forecaster,
		cache:      c,
		ttl:        ttl,
		events:     events,
		metrics:    metrics,
		log:        log,
	}
}

// State exposes the run the service forecasts from.
func (s *ForecastService) State() *State { return s.state }

// Forecast returns the back-cast plus horizon future rows. Concurrent misses
// for one horizon may both compute; the results are identical.
func (s *ForecastService) Forecast(ctx context.Context, horizon int) (models.ForecastTable, error) {
	if s.state == nil || s.state.Model == nil {
		return nil, models.ErrNotReady
	}
	start := time.Now()
	key := cache.GenerateKeyWithParams("forecast", s.state.ModelID, horizon)

	var table models.ForecastTable
	err := s.cache.Get(ctx, key, &table)
	switch {
	case err == nil:
		s.metrics.RecordForecast(horizon, true, time.Since(start).Seconds())
		return table, nil
	case !errors.Is(err, cache.ErrCacheMiss):
		s.metrics.RecordError("cache_get")
		s.log.Warn("forecast cache read failed", logger.String("key", key), logger.Error(err))
	}

	table, err = s.forecaster.Predict(s.state.Model, horizon)
	if err != nil {
		return nil, fmt.Errorf("forecast %d: %w", horizon, err)
	}
	if err := s.cache.Set(ctx, key, table, s.ttl); err != nil {
		s.metrics.RecordError("cache_set")
		s.log.Warn("forecast cache write failed", logger.String("key", key), logger.Error(err))
	}
	s.metrics.RecordForecast(horizon, false, time.Since(start).Seconds())
	s.publish(ctx, horizon, table)
	return table, nil
}

func (s *ForecastService) publish(ctx context.Context, horizon int, table models.ForecastTable) {
	if s.events == nil || len(table) == 0 {
		return
	}
	last := table.Last()
	ev := models.ForecastGeneratedEvent{
		Type:      models.EventForecastGenerated,
		RunID:     s.state.RunID,
		ModelID:   s.state.ModelID,
		Horizon:   horizon,
		Final:     last.YHat,
		Lower:     last.YHatLower,
		Upper:     last.YHatUpper,
		Timestamp: time.Now().UTC(),
	}
	if err := s.events.PublishEvent(ctx, s.state.RunID, ev); err != nil {
		s.metrics.RecordError("publish")
		s.log.Warn("publish forecast event failed", logger.Error(err))
	}
}
