package models

import (
	"math"
	"time"
)

// Row is one record of the raw price history. Close is NaN when the source
// cell was empty; the auxiliary OHLV columns are nil when absent.
type Row struct {
	Date   time.Time
	Close  float64
	Open   *float64
	High   *float64
	Low    *float64
	Volume *float64
}

// Series is the canonical price history, sorted ascending by date.
type Series struct {
	Source string
	Rows   []Row
}

// Len returns the number of rows.
func (s *Series) Len() int { return len(s.Rows) }

// Last returns the most recent row. The series must not be empty.
func (s *Series) Last() Row { return s.Rows[len(s.Rows)-1] }

// SeriesSummary describes a loaded series for logging.
type SeriesSummary struct {
	Rows         int
	From         time.Time
	To           time.Time
	CloseMin     float64
	CloseMax     float64
	CloseMean    float64
	MissingClose int
}

// Summary computes min/max/mean over the non-missing closes.
func (s *Series) Summary() SeriesSummary {
	out := SeriesSummary{Rows: len(s.Rows)}
	if len(s.Rows) == 0 {
		return out
	}
	out.From = s.Rows[0].Date
	out.To = s.Rows[len(s.Rows)-1].Date
	out.CloseMin = math.Inf(1)
	out.CloseMax = math.Inf(-1)
	var sum float64
	var n int
	for _, r := range s.Rows {
		if math.IsNaN(r.Close) {
			out.MissingClose++
			continue
		}
		sum += r.Close
		n++
		out.CloseMin = math.Min(out.CloseMin, r.Close)
		out.CloseMax = math.Max(out.CloseMax, r.Close)
	}
	if n == 0 {
		out.CloseMin, out.CloseMax = math.NaN(), math.NaN()
		out.CloseMean = math.NaN()
		return out
	}
	out.CloseMean = sum / float64(n)
	return out
}

// Observation is a single (ds, y) point consumed by the forecaster.
type Observation struct {
	DS time.Time `json:"ds"`
	Y  float64   `json:"y"`
}

// ModelInput is the two-column projection of a Series.
type ModelInput []Observation

// Dates returns the ds column.
func (in ModelInput) Dates() []time.Time {
	out := make([]time.Time, len(in))
	for i, o := range in {
		out[i] = o.DS
	}
	return out
}

// Values returns the y column.
func (in ModelInput) Values() []float64 {
	out := make([]float64, len(in))
	for i, o := range in {
		out[i] = o.Y
	}
	return out
}

// Split holds a training prefix and a testing suffix of a ModelInput.
type Split struct {
	Train ModelInput
	Test  ModelInput
}
