package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"FinCast/internal/domain/models"
	domrepo "FinCast/internal/domain/repository"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	forecasts     *prometheus.CounterVec
	forecastTime  *prometheus.HistogramVec
	evaluation    *prometheus.GaugeVec
	errorsTotal   *prometheus.CounterVec
}

var _ domrepo.Metrics = (*Recorder)(nil)

// New creates a recorder registered on the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registered on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		stageDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fincast_pipeline_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30},
			},
			[]string{"stage"},
		),
		stageErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincast_pipeline_stage_errors_total",
				Help: "Pipeline stages that returned an error",
			},
			[]string{"stage"},
		),
		forecasts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincast_forecasts_total",
				Help: "Forecast requests by horizon and cache outcome",
			},
			[]string{"horizon", "cache"},
		),
		forecastTime: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fincast_forecast_duration_seconds",
				Help:    "Time to serve a forecast",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"cache"},
		),
		evaluation: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fincast_evaluation",
				Help: "Accuracy of the current model on the held-out window",
			},
			[]string{"metric"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincast_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordStage records how long a pipeline stage took and whether it failed.
func (r *Recorder) RecordStage(stage string, seconds float64, err error) {
	r.stageDuration.WithLabelValues(stage).Observe(seconds)
	if err != nil {
		r.stageErrors.WithLabelValues(stage).Inc()
	}
}

// RecordForecast records one forecast request.
func (r *Recorder) RecordForecast(horizon int, cacheHit bool, seconds float64) {
	outcome := "miss"
	if cacheHit {
		outcome = "hit"
	}
	r.forecasts.WithLabelValues(strconv.Itoa(horizon), outcome).Inc()
	r.forecastTime.WithLabelValues(outcome).Observe(seconds)
}

// RecordEvaluation publishes the evaluation metrics as gauges.
func (r *Recorder) RecordEvaluation(ev models.Evaluation) {
	r.evaluation.WithLabelValues("mae").Set(ev.MAE)
	r.evaluation.WithLabelValues("rmse").Set(ev.RMSE)
	r.evaluation.WithLabelValues("mape").Set(ev.MAPE)
	r.evaluation.WithLabelValues("directional_accuracy").Set(ev.DirectionalAccuracy)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
