package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"advision/internal/domain"
	"advision/pkg/logger"
	"advision/pkg/metrics"
)

// InsightService runs the cross-ad synthesis stage over the handed-off
// analysis set.
type InsightService struct {
	store        domain.SnapshotStore
	synthesizer  domain.InsightSynthesizer
	stageTimeout time.Duration
	logger       *logger.Logger
	metrics      *metrics.Metrics
	mutex        sync.Mutex
}

func NewInsightService(
	store domain.SnapshotStore,
	synthesizer domain.InsightSynthesizer,
	stageTimeout time.Duration,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *InsightService {
	return &InsightService{
		store:        store,
		synthesizer:  synthesizer,
		stageTimeout: stageTimeout,
		logger:       logger,
		metrics:      metrics,
	}
}

// Run synthesizes insights from the handed-off analysis snapshot and
// persists them. The result records the input snapshot's sequence so the
// blueprint stage can tell when insights have gone stale.
func (s *InsightService) Run(ctx context.Context) (domain.SmartInsights, error) {
	if !s.mutex.TryLock() {
		return domain.SmartInsights{}, domain.ErrStageBusy
	}
	defer s.mutex.Unlock()

	start := time.Now()
	s.metrics.IncStagesInProgress()
	defer s.metrics.DecStagesInProgress()

	log := s.logger.WithContext(ctx)

	var analysis []domain.AdAnalysis
	meta, err := s.store.Get(ctx, domain.KeyInsightInput, &analysis)
	if err != nil {
		s.metrics.RecordStageRun("insights", "missing_input", time.Since(start))
		if errors.Is(err, domain.ErrSnapshotMissing) {
			return domain.SmartInsights{}, fmt.Errorf("no analysis handed off for insights: %w", err)
		}
		return domain.SmartInsights{}, fmt.Errorf("failed to read insight input: %w", err)
	}
	if len(analysis) == 0 {
		s.metrics.RecordStageRun("insights", "missing_input", time.Since(start))
		return domain.SmartInsights{}, fmt.Errorf("no analysis handed off for insights: %w", domain.ErrSnapshotMissing)
	}

	log.WithField("analyses", len(analysis)).Info("Starting insight synthesis stage")

	stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()

	insights, err := s.synthesizer.GenerateInsights(stageCtx, analysis)
	if err != nil {
		status := "failed"
		if errors.Is(err, context.DeadlineExceeded) {
			status = "timeout"
			err = fmt.Errorf("%w: insight synthesis exceeded %s", domain.ErrStageTimeout, s.stageTimeout)
		}
		s.metrics.RecordStageRun("insights", status, time.Since(start))
		log.WithError(err).Error("Insight synthesis stage failed")
		return domain.SmartInsights{}, err
	}

	insights.SourceSequence = meta.Sequence

	if _, err := s.store.Put(ctx, domain.KeyInsights, insights); err != nil {
		s.metrics.RecordStageRun("insights", "persist_failed", time.Since(start))
		return domain.SmartInsights{}, fmt.Errorf("failed to persist insights: %w", err)
	}

	duration := time.Since(start)
	s.metrics.RecordStageRun("insights", "success", duration)
	log.WithFields(map[string]any{
		"duration":        duration,
		"source_sequence": meta.Sequence,
	}).Info("Insight synthesis stage completed")

	return insights, nil
}

// Current returns the persisted insights and their snapshot metadata.
func (s *InsightService) Current(ctx context.Context) (domain.SmartInsights, domain.SnapshotMeta, error) {
	var insights domain.SmartInsights
	meta, err := s.store.Get(ctx, domain.KeyInsights, &insights)
	if err != nil {
		return domain.SmartInsights{}, domain.SnapshotMeta{}, err
	}
	return insights, meta, nil
}
