package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeriesSummary(t *testing.T) {
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := &Series{Rows: []Row{
		{Date: d, Close: 10},
		{Date: d.AddDate(0, 0, 1), Close: math.NaN()},
		{Date: d.AddDate(0, 0, 2), Close: 30},
	}}

	sum := s.Summary()
	assert.Equal(t, 3, sum.Rows)
	assert.Equal(t, d, sum.From)
	assert.Equal(t, d.AddDate(0, 0, 2), sum.To)
	assert.Equal(t, 10.0, sum.CloseMin)
	assert.Equal(t, 30.0, sum.CloseMax)
	assert.Equal(t, 20.0, sum.CloseMean)
	assert.Equal(t, 1, sum.MissingClose)
}

func TestSeriesSummaryAllMissing(t *testing.T) {
	s := &Series{Rows: []Row{{Date: time.Now(), Close: math.NaN()}}}
	sum := s.Summary()
	assert.Equal(t, 1, sum.MissingClose)
	assert.True(t, math.IsNaN(sum.CloseMean))
}

func TestForecastTableTail(t *testing.T) {
	tbl := ForecastTable{{YHat: 1}, {YHat: 2}, {YHat: 3}}
	assert.Len(t, tbl.Tail(2), 2)
	assert.Equal(t, 3.0, tbl.Tail(2).Last().YHat)
	assert.Len(t, tbl.Tail(10), 3)
	assert.Empty(t, tbl.Tail(0))
}
