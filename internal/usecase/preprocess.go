package usecase

import (
	"math"

	"FinCast/internal/domain/models"
)

// Preprocess fills missing closes forward, then backward for a leading gap,
// and projects the series to (ds, y). No rows are dropped.
func Preprocess(s *models.Series) models.ModelInput {
	out := make(models.ModelInput, len(s.Rows))
	last := math.NaN()
	for i, r := range s.Rows {
		if !math.IsNaN(r.Close) {
			last = r.Close
		}
		out[i] = models.Observation{DS: r.Date, Y: last}
	}

	first := -1
	for i, o := range out {
		if !math.IsNaN(o.Y) {
			first = i
			break
		}
	}
	if first > 0 {
		for i := 0; i < first; i++ {
			out[i].Y = out[first].Y
		}
	}
	return out
}
