package repository

import (
	"context"

	"FinCast/internal/domain/models"
)

// ModelStore persists the serialized fitted model.
type ModelStore interface {
	Save(ctx context.Context, blob []byte) error
	// Load returns (nil, false, nil) when nothing has been stored yet.
	Load(ctx context.Context) ([]byte, bool, error)
}

// RunArchive records the outcome of a pipeline run for offline analysis.
type RunArchive interface {
	ArchiveRun(ctx context.Context, run ArchivedRun) error
	Close() error
}

// ArchivedRun bundles what a run archive persists.
type ArchivedRun struct {
	RunID      string
	ModelID    string
	Input      models.ModelInput
	Evaluation models.Evaluation
	TrainRows  int
	TestRows   int
}

// EventPublisher emits domain events.
type EventPublisher interface {
	PublishEvent(ctx context.Context, key string, event interface{}) error
	Close() error
}

// Metrics records pipeline and forecast telemetry.
type Metrics interface {
	RecordStage(stage string, seconds float64, err error)
	RecordForecast(horizon int, cacheHit bool, seconds float64)
	RecordEvaluation(ev models.Evaluation)
	RecordError(kind string)
}
