package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"FinCast/internal/domain/models"
	drepo "FinCast/internal/domain/repository"
	domsvc "FinCast/internal/domain/service"
	"FinCast/internal/services/forecast"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func daily(n int, f func(i int) float64) models.ModelInput {
	out := make(models.ModelInput, n)
	for i := range out {
		out[i] = models.Observation{DS: day0.AddDate(0, 0, i), Y: f(i)}
	}
	return out
}

func writeCSV(t *testing.T, dir string, n int, f func(i int) float64) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Date,Open,High,Low,Close,Volume\n")
	for i := 0; i < n; i++ {
		v := f(i)
		fmt.Fprintf(&b, "%s,%g,%g,%g,%g,%d\n", day0.AddDate(0, 0, i).Format(time.DateOnly), v, v+1, v-1, v, 1000+i)
	}
	path := filepath.Join(dir, "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

type nopMetrics struct {
	mu     sync.Mutex
	stages map[string]int
	errs   map[string]int
	hits   int
	misses int
}

func newMetrics() *nopMetrics {
	return &nopMetrics{stages: map[string]int{}, errs: map[string]int{}}
}

func (m *nopMetrics) RecordStage(stage string, _ float64, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stages[stage]++
}

func (m *nopMetrics) RecordForecast(_ int, hit bool, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}

func (m *nopMetrics) RecordEvaluation(models.Evaluation) {}

func (m *nopMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[kind]++
}

var _ drepo.Metrics = (*nopMetrics)(nil)

type memStore struct {
	mu    sync.Mutex
	blob  []byte
	saves int
}

func (s *memStore) Save(_ context.Context, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = append([]byte(nil), blob...)
	s.saves++
	return nil
}

func (s *memStore) Load(context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blob == nil {
		return nil, false, nil
	}
	return s.blob, true, nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events []interface{}
	err    error
}

func (p *capturePublisher) PublishEvent(_ context.Context, _ string, ev interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type failingArchive struct{}

func (failingArchive) ArchiveRun(context.Context, drepo.ArchivedRun) error {
	return errors.New("clickhouse unavailable")
}

func (failingArchive) Close() error { return nil }

// countingForecaster wraps the real engine and counts Predict calls.
type countingForecaster struct {
	*forecast.Engine
	predicts atomic.Int64
}

func (c *countingForecaster) Predict(m domsvc.Model, periods int) (models.ForecastTable, error) {
	c.predicts.Add(1)
	return c.Engine.Predict(m, periods)
}
