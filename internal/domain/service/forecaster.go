package service

import (
	"time"

	"FinCast/internal/domain/models"
)

// Model is an opaque fitted forecaster state. Implementations must be safe for
// concurrent reads.
type Model interface {
	// TrainEnd is the last training date.
	TrainEnd() time.Time
	// TrainSize is the number of training rows.
	TrainSize() int
	// Fingerprint identifies the training input and fit options.
	Fingerprint() string
}

// Forecaster owns the fit/predict lifecycle of a forecasting model.
type Forecaster interface {
	Fit(train models.ModelInput, cfg models.ModelConfig) (Model, error)
	Predict(m Model, periods int) (models.ForecastTable, error)
	Save(m Model) ([]byte, error)
	Load(blob []byte) (Model, error)
}
