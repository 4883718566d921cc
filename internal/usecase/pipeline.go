package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"FinCast/internal/domain/models"
	drepo "FinCast/internal/domain/repository"
	domsvc "FinCast/internal/domain/service"
	"FinCast/pkg/logger"
)

// PipelineConfig selects the input and the fit options of a run.
type PipelineConfig struct {
	CSVPath  string
	DataDir  string
	TestDays int
	Model    models.ModelConfig
	// Reuse loads the stored model instead of fitting when it matches the
	// training window.
	Reuse bool
}

// Pipeline runs load -> preprocess -> split -> fit -> evaluate and persists
// the outcome. Archive and event sinks are optional.
type Pipeline struct {
	cfg        PipelineConfig
	forecaster domsvc.Forecaster
	evaluator  *Evaluator
	store      drepo.ModelStore
	archive    drepo.RunArchive
	events     drepo.EventPublisher
	metrics    drepo.Metrics
	log        *logger.Logger
}

func NewPipeline(
	cfg PipelineConfig,
	forecaster domsvc.Forecaster,
	store drepo.ModelStore,
	archive drepo.RunArchive,
	events drepo.EventPublisher,
	metrics drepo.Metrics,
	log *logger.Logger,
) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		forecaster: forecaster,
		evaluator:  NewEvaluator(forecaster),
		store:      store,
		archive:    archive,
		events:     events,
		metrics:    metrics,
		log:        log,
	}
}

// Run executes one training run. Any core failure aborts the run; archive and
// event failures are logged and counted only.
func (p *Pipeline) Run(ctx context.Context) (*State, error) {
	st := &State{RunID: uuid.NewString()}
	log := p.log.With(logger.String("run_id", st.RunID))

	var path string
	err := p.stage("load", func() error {
		var err error
		if path, err = ResolveCSV(p.cfg.CSVPath, p.cfg.DataDir); err != nil {
			return err
		}
		st.Series, err = LoadSeries(path)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	logSummary(log, path, st.Series.Summary())

	start := time.Now()
	st.Input = Preprocess(st.Series)
	p.metrics.RecordStage("preprocess", time.Since(start).Seconds(), nil)

	if err := p.stage("split", func() error {
		var err error
		st.Split, err = Split(st.Input, p.cfg.TestDays)
		return err
	}); err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	log.Info("split ready",
		logger.Int("train_rows", len(st.Split.Train)),
		logger.Int("test_rows", len(st.Split.Test)))

	var blob []byte
	if p.cfg.Reuse {
		blob = p.reuse(ctx, log, st)
	}
	if st.Model == nil {
		if err := p.stage("fit", func() error {
			var err error
			st.Model, err = p.forecaster.Fit(st.Split.Train, p.cfg.Model)
			return err
		}); err != nil {
			return nil, fmt.Errorf("fit: %w", err)
		}
		if blob, err = p.forecaster.Save(st.Model); err != nil {
			return nil, fmt.Errorf("encode model: %w", err)
		}
	}
	st.ModelID = ModelID(blob)

	if err := p.stage("evaluate", func() error {
		var err error
		st.Evaluation, err = p.evaluator.Evaluate(ctx, st.Model, st.Split.Test)
		return err
	}); err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	p.metrics.RecordEvaluation(st.Evaluation)
	log.Info("evaluation complete",
		logger.String("model_id", st.ModelID),
		logger.Float64("mae", st.Evaluation.MAE),
		logger.Float64("rmse", st.Evaluation.RMSE),
		logger.Float64("mape", st.Evaluation.MAPE),
		logger.Float64("directional_accuracy", st.Evaluation.DirectionalAccuracy))

	if p.store != nil && !st.Reused {
		if err := p.stage("save", func() error { return p.store.Save(ctx, blob) }); err != nil {
			return nil, fmt.Errorf("save model: %w", err)
		}
	}

	p.auxiliary(ctx, log, st)
	st.FinishedAt = time.Now().UTC()
	return st, nil
}

// reuse loads the stored model when it was fit on the same training input
// with the same options.
func (p *Pipeline) reuse(ctx context.Context, log *logger.Logger, st *State) []byte {
	if p.store == nil {
		return nil
	}
	blob, ok, err := p.store.Load(ctx)
	if err != nil {
		log.Warn("stored model unavailable, refitting", logger.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	m, err := p.forecaster.Load(blob)
	if err != nil {
		log.Warn("stored model rejected, refitting", logger.Error(err))
		return nil
	}
	train := st.Split.Train
	if m.TrainSize() != len(train) || !m.TrainEnd().Equal(train[len(train)-1].DS) {
		log.Info("stored model is stale, refitting",
			logger.Int("stored_rows", m.TrainSize()),
			logger.Int("train_rows", len(train)))
		return nil
	}
	if m.Fingerprint() != train.Fingerprint(p.cfg.Model) {
		log.Info("stored model was fit on other data or options, refitting",
			logger.Int("train_rows", len(train)))
		return nil
	}
	st.Model = m
	st.Reused = true
	log.Info("reusing stored model", logger.Int("train_rows", m.TrainSize()))
	return blob
}

func (p *Pipeline) auxiliary(ctx context.Context, log *logger.Logger, st *State) {
	if p.archive != nil {
		err := p.stage("archive", func() error {
			return p.archive.ArchiveRun(ctx, drepo.ArchivedRun{
				RunID:      st.RunID,
				ModelID:    st.ModelID,
				Input:      st.Input,
				Evaluation: st.Evaluation,
				TrainRows:  len(st.Split.Train),
				TestRows:   len(st.Split.Test),
			})
		})
		if err != nil {
			p.metrics.RecordError("archive")
			log.Error("archive run failed", logger.Error(err))
		}
	}

	if p.events != nil {
		ev := models.RunCompletedEvent{
			Type:                models.EventRunCompleted,
			RunID:               st.RunID,
			ModelID:             st.ModelID,
			Source:              st.Series.Source,
			TrainRows:           len(st.Split.Train),
			TestRows:            len(st.Split.Test),
			MAE:                 st.Evaluation.MAE,
			RMSE:                st.Evaluation.RMSE,
			MAPE:                st.Evaluation.MAPE,
			DirectionalAccuracy: st.Evaluation.DirectionalAccuracy,
			Timestamp:           time.Now().UTC(),
		}
		if err := p.stage("publish", func() error { return p.events.PublishEvent(ctx, st.RunID, ev) }); err != nil {
			p.metrics.RecordError("publish")
			log.Error("publish run event failed", logger.Error(err))
		}
	}
}

func (p *Pipeline) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	p.metrics.RecordStage(name, time.Since(start).Seconds(), err)
	return err
}

func logSummary(log *logger.Logger, path string, s models.SeriesSummary) {
	fields := []logger.Field{
		logger.String("source", path),
		logger.Int("rows", s.Rows),
		logger.String("from", s.From.Format(time.DateOnly)),
		logger.String("to", s.To.Format(time.DateOnly)),
		logger.Int("missing_close", s.MissingClose),
	}
	if !math.IsNaN(s.CloseMean) {
		fields = append(fields,
			logger.Float64("close_min", s.CloseMin),
			logger.Float64("close_max", s.CloseMax),
			logger.Float64("close_mean", s.CloseMean))
	}
	log.Info("series loaded", fields...)
}

// ModelID fingerprints a saved model blob.
func ModelID(blob []byte) string {
	sum := sha256.Sum256(blob)
	return hex.EncodeToString(sum[:])
}
