package models

import "time"

// EvaluationRow pairs a held-out actual with the model's prediction.
type EvaluationRow struct {
	DS        time.Time `json:"ds"`
	Actual    float64   `json:"actual"`
	Predicted float64   `json:"predicted"`
}

// Evaluation holds accuracy statistics over the test window.
type Evaluation struct {
	MAE                 float64         `json:"mae"`
	RMSE                float64         `json:"rmse"`
	MAPE                float64         `json:"mape"`
	DirectionalAccuracy float64         `json:"directional_accuracy"`
	Rows                []EvaluationRow `json:"rows"`
}
