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

// AnalysisService runs the per-ad analysis stage. At most one run is in
// flight at a time; concurrent callers get ErrStageBusy instead of a
// second collaborator call.
type AnalysisService struct {
	store        domain.SnapshotStore
	analyzer     domain.AdAnalyzer
	stageTimeout time.Duration
	logger       *logger.Logger
	metrics      *metrics.Metrics
	mutex        sync.Mutex
}

func NewAnalysisService(
	store domain.SnapshotStore,
	analyzer domain.AdAnalyzer,
	stageTimeout time.Duration,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *AnalysisService {
	return &AnalysisService{
		store:        store,
		analyzer:     analyzer,
		stageTimeout: stageTimeout,
		logger:       logger,
		metrics:      metrics,
	}
}

// Run analyzes the committed selection and persists the result set. The
// collaborator response is validated by ad ID correlation: every selected
// ad must have exactly one result and no result may reference an unknown
// ad. Results are stored in selection order regardless of response order.
func (s *AnalysisService) Run(ctx context.Context) ([]domain.AdAnalysis, error) {
	if !s.mutex.TryLock() {
		return nil, domain.ErrStageBusy
	}
	defer s.mutex.Unlock()

	start := time.Now()
	s.metrics.IncStagesInProgress()
	defer s.metrics.DecStagesInProgress()

	log := s.logger.WithContext(ctx)

	var selected []domain.Ad
	if _, err := s.store.Get(ctx, domain.KeySelectedAds, &selected); err != nil {
		s.metrics.RecordStageRun("analysis", "missing_input", time.Since(start))
		if errors.Is(err, domain.ErrSnapshotMissing) {
			return nil, fmt.Errorf("no ads selected for analysis: %w", err)
		}
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}
	if len(selected) == 0 {
		s.metrics.RecordStageRun("analysis", "missing_input", time.Since(start))
		return nil, fmt.Errorf("no ads selected for analysis: %w", domain.ErrSnapshotMissing)
	}

	log.WithField("ads", len(selected)).Info("Starting ad analysis stage")

	stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()

	results, err := s.analyzer.AnalyzeAds(stageCtx, selected)
	if err != nil {
		status := "failed"
		if errors.Is(err, context.DeadlineExceeded) {
			status = "timeout"
			err = fmt.Errorf("%w: analysis exceeded %s", domain.ErrStageTimeout, s.stageTimeout)
		}
		s.metrics.RecordStageRun("analysis", status, time.Since(start))
		log.WithError(err).Error("Ad analysis stage failed")
		return nil, err
	}

	ordered, err := correlate(selected, results)
	if err != nil {
		s.metrics.RecordStageRun("analysis", "malformed", time.Since(start))
		log.WithError(err).Error("Ad analysis response failed correlation")
		return nil, err
	}

	if _, err := s.store.Put(ctx, domain.KeyAnalysis, ordered); err != nil {
		s.metrics.RecordStageRun("analysis", "persist_failed", time.Since(start))
		return nil, fmt.Errorf("failed to persist analysis: %w", err)
	}

	duration := time.Since(start)
	s.metrics.RecordStageRun("analysis", "success", duration)
	log.WithFields(map[string]any{
		"duration": duration,
		"results":  len(ordered),
	}).Info("Ad analysis stage completed")

	return ordered, nil
}

// Current returns the persisted analysis set and its snapshot metadata.
func (s *AnalysisService) Current(ctx context.Context) ([]domain.AdAnalysis, domain.SnapshotMeta, error) {
	var analysis []domain.AdAnalysis
	meta, err := s.store.Get(ctx, domain.KeyAnalysis, &analysis)
	if err != nil {
		return nil, domain.SnapshotMeta{}, err
	}
	return analysis, meta, nil
}

// Handoff copies the analysis set to the insights input key. The insights
// stage only ever reads the handed-off copy, so re-running analysis does
// not change what insights were derived from until the user hands off
// again.
func (s *AnalysisService) Handoff(ctx context.Context) (domain.SnapshotMeta, error) {
	var analysis []domain.AdAnalysis
	if _, err := s.store.Get(ctx, domain.KeyAnalysis, &analysis); err != nil {
		if errors.Is(err, domain.ErrSnapshotMissing) {
			return domain.SnapshotMeta{}, fmt.Errorf("no analysis to hand off: %w", err)
		}
		return domain.SnapshotMeta{}, fmt.Errorf("failed to read analysis: %w", err)
	}

	meta, err := s.store.Put(ctx, domain.KeyInsightInput, analysis)
	if err != nil {
		return domain.SnapshotMeta{}, fmt.Errorf("failed to hand off analysis: %w", err)
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"results":  len(analysis),
		"sequence": meta.Sequence,
	}).Info("Analysis handed off to insights stage")

	return meta, nil
}

// correlate matches results to the selection by ad ID and returns them in
// selection order. Any missing, duplicate or unknown ID fails the whole
// set with ErrMalformedResponse.
func correlate(selected []domain.Ad, results []domain.AdAnalysis) ([]domain.AdAnalysis, error) {
	byID := make(map[string]domain.AdAnalysis, len(results))
	for _, r := range results {
		if r.AdID == "" {
			return nil, fmt.Errorf("%w: result without ad ID", domain.ErrMalformedResponse)
		}
		if _, dup := byID[r.AdID]; dup {
			return nil, fmt.Errorf("%w: duplicate result for ad %s", domain.ErrMalformedResponse, r.AdID)
		}
		byID[r.AdID] = r
	}

	ordered := make([]domain.AdAnalysis, 0, len(selected))
	for _, ad := range selected {
		r, ok := byID[ad.ID]
		if !ok {
			return nil, fmt.Errorf("%w: no result for ad %s", domain.ErrMalformedResponse, ad.ID)
		}
		r.Ad = ad
		ordered = append(ordered, r)
		delete(byID, ad.ID)
	}
	if len(byID) > 0 {
		return nil, fmt.Errorf("%w: %d results reference unknown ads", domain.ErrMalformedResponse, len(byID))
	}

	return ordered, nil
}
