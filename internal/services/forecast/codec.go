package forecast

import (
	"encoding/json"
	"fmt"
	"math"

	"FinCast/internal/domain/models"
	domsvc "FinCast/internal/domain/service"
)

// Save serializes a fitted model to a versioned JSON blob.
func (e *Engine) Save(dm domsvc.Model) ([]byte, error) {
	m, ok := dm.(*Model)
	if !ok || m == nil {
		return nil, fmt.Errorf("save: unsupported model type %T", dm)
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("save: marshal model: %w", err)
	}
	return b, nil
}

// Load restores a model produced by Save.
func (e *Engine) Load(blob []byte) (domsvc.Model, error) {
	var m Model
	if err := json.Unmarshal(blob, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrModelFormat, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Model) validate() error {
	if m.Version != modelVersion {
		return fmt.Errorf("%w: unsupported version %d", models.ErrModelFormat, m.Version)
	}
	if err := validateConfig(m.Config); err != nil {
		return fmt.Errorf("%w: %v", models.ErrModelFormat, err)
	}
	if len(m.History) < 2 || !(m.SpanDays > 0) || !(m.YScale > 0) {
		return fmt.Errorf("%w: degenerate training range", models.ErrModelFormat)
	}
	if len(m.Beta) != m.numFeatures() {
		return fmt.Errorf("%w: expected %d coefficients, got %d", models.ErrModelFormat, m.numFeatures(), len(m.Beta))
	}
	for _, v := range append([]float64{m.Sigma, m.TrendSigma}, m.Beta...) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite parameter", models.ErrModelFormat)
		}
	}
	return nil
}
