package usecase

import (
	"time"

	"FinCast/internal/domain/models"
	domsvc "FinCast/internal/domain/service"
)

// State is the result of one pipeline run. It is built once and only read
// afterwards, so handlers may share it freely.
type State struct {
	RunID      string
	ModelID    string
	Series     *models.Series
	Input      models.ModelInput
	Split      models.Split
	Model      domsvc.Model
	Evaluation models.Evaluation
	Reused     bool
	FinishedAt time.Time
}

// LastObservation returns the most recent preprocessed point.
func (s *State) LastObservation() models.Observation {
	return s.Input[len(s.Input)-1]
}
