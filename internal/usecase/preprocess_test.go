package usecase

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"FinCast/internal/domain/models"
)

func seriesOf(vals ...float64) *models.Series {
	s := &models.Series{}
	for i, v := range vals {
		s.Rows = append(s.Rows, models.Row{Date: day0.AddDate(0, 0, i), Close: v})
	}
	return s
}

func TestPreprocessForwardThenBackFill(t *testing.T) {
	nan := math.NaN()
	got := Preprocess(seriesOf(nan, 2, nan, 4, nan))
	// leading gap takes the first value, inner and trailing gaps carry forward
	assert.Equal(t, []float64{2, 2, 2, 4, 4}, got.Values())
	assert.Equal(t, day0.AddDate(0, 0, 4), got[4].DS)
}

func TestPreprocessKeepsCompleteSeries(t *testing.T) {
	got := Preprocess(seriesOf(1, 2, 3))
	assert.Equal(t, []float64{1, 2, 3}, got.Values())
}

func TestPreprocessAllMissingStaysNaN(t *testing.T) {
	got := Preprocess(seriesOf(math.NaN(), math.NaN()))
	assert.Len(t, got, 2)
	assert.True(t, math.IsNaN(got[0].Y))
}
