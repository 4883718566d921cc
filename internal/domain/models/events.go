package models

import "time"

// Event types published to the events topic.
const (
	EventRunCompleted      = "run.completed"
	EventForecastGenerated = "forecast.generated"
)

// RunCompletedEvent is emitted once the startup pipeline finishes.
type RunCompletedEvent struct {
	Type                string    `json:"type"`
	RunID               string    `json:"run_id"`
	ModelID             string    `json:"model_id"`
	Source              string    `json:"source"`
	TrainRows           int       `json:"train_rows"`
	TestRows            int       `json:"test_rows"`
	MAE                 float64   `json:"mae"`
	RMSE                float64   `json:"rmse"`
	MAPE                float64   `json:"mape"`
	DirectionalAccuracy float64   `json:"directional_accuracy"`
	Timestamp           time.Time `json:"timestamp"`
}

// ForecastGeneratedEvent is emitted when a horizon is computed (cache miss).
type ForecastGeneratedEvent struct {
	Type      string    `json:"type"`
	RunID     string    `json:"run_id"`
	ModelID   string    `json:"model_id"`
	Horizon   int       `json:"horizon"`
	Final     float64   `json:"final_yhat"`
	Lower     float64   `json:"final_lower"`
	Upper     float64   `json:"final_upper"`
	Timestamp time.Time `json:"timestamp"`
}
