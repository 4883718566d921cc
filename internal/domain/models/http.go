package models

// Requests and responses for the forecast HTTP endpoints.

type ForecastRequest struct {
	Horizon int `query:"horizon" json:"horizon" default:"30" validate:"gte=1,lte=3650"`
}

type ForecastResponse struct {
	Dates       []string  `json:"dates"`
	Predictions []float64 `json:"predictions"`
	UpperBound  []float64 `json:"upper_bound"`
	LowerBound  []float64 `json:"lower_bound"`
}

type MetricsResponse struct {
	MAE                 float64 `json:"mae"`
	RMSE                float64 `json:"rmse"`
	MAPE                float64 `json:"mape"`
	DirectionalAccuracy float64 `json:"directional_accuracy"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	RunID   string `json:"run_id,omitempty"`
	ModelID string `json:"model_id,omitempty"`
}
