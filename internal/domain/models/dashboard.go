package models

import "time"

// Horizons offered on the dashboard.
var DashboardHorizons = []int{7, 30, 60, 90}

// DefaultHorizon is used when the requested horizon is missing or invalid.
const DefaultHorizon = 30

// DashboardSummary is everything the index page renders.
type DashboardSummary struct {
	Horizon       int
	LastDate      time.Time
	LastActual    float64
	ForecastDate  time.Time
	ForecastPrice float64
	ForecastLow   float64
	ForecastHigh  float64
	PctChange     float64
	Metrics       Evaluation
	TrainRows     int
	TestRows      int
	RunID         string
	ModelID       string
}
