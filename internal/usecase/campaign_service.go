package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"advision/internal/domain"
	"advision/pkg/logger"
	"advision/pkg/metrics"

	"github.com/google/uuid"
)

// WizardSummary is the read-back shown on the wizard's first step. Either
// section may be absent when its stage has not run yet.
type WizardSummary struct {
	Analysis     []domain.AdAnalysis       `json:"analysis"`
	Aggregates   domain.AnalysisAggregates `json:"aggregates"`
	HasAnalysis  bool                      `json:"has_analysis"`
	Insights     domain.SmartInsights      `json:"insights"`
	HasInsights  bool                      `json:"has_insights"`
	NextStep     domain.WizardStep         `json:"next_step"`
	ReadyToBuild bool                      `json:"ready_to_build"`
}

// CampaignService drives the blueprint and asset steps of the campaign
// wizard and maintains the dashboard list of completed campaigns.
type CampaignService struct {
	store          domain.SnapshotStore
	generator      domain.BlueprintGenerator
	imageGen       domain.ImageGenerator
	stageTimeout   time.Duration
	placeholderURL string
	logger         *logger.Logger
	metrics        *metrics.Metrics
}

func NewCampaignService(
	store domain.SnapshotStore,
	generator domain.BlueprintGenerator,
	imageGen domain.ImageGenerator,
	stageTimeout time.Duration,
	placeholderURL string,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *CampaignService {
	return &CampaignService{
		store:          store,
		generator:      generator,
		imageGen:       imageGen,
		stageTimeout:   stageTimeout,
		placeholderURL: placeholderURL,
		logger:         logger,
		metrics:        metrics,
	}
}

// Summary assembles the wizard's opening view from whatever upstream
// snapshots exist.
func (s *CampaignService) Summary(ctx context.Context) (WizardSummary, error) {
	summary := WizardSummary{NextStep: domain.StepInput}

	var analysis []domain.AdAnalysis
	if _, err := s.store.Get(ctx, domain.KeyAnalysis, &analysis); err == nil {
		summary.Analysis = analysis
		summary.Aggregates = domain.Aggregate(analysis)
		summary.HasAnalysis = true
	} else if !errors.Is(err, domain.ErrSnapshotMissing) {
		return WizardSummary{}, fmt.Errorf("failed to read analysis: %w", err)
	}

	var insights domain.SmartInsights
	if _, err := s.store.Get(ctx, domain.KeyInsights, &insights); err == nil {
		summary.Insights = insights
		summary.HasInsights = true
	} else if !errors.Is(err, domain.ErrSnapshotMissing) {
		return WizardSummary{}, fmt.Errorf("failed to read insights: %w", err)
	}

	summary.ReadyToBuild = summary.HasInsights
	return summary, nil
}

// GenerateBlueprint validates the wizard input and synthesizes a campaign
// blueprint from it and the persisted insights. Insights derived from a
// superseded analysis handoff are rejected with ErrStaleInput.
func (s *CampaignService) GenerateBlueprint(ctx context.Context, input domain.CampaignInput) (domain.CampaignBlueprint, error) {
	start := time.Now()
	s.metrics.IncStagesInProgress()
	defer s.metrics.DecStagesInProgress()

	log := s.logger.WithContext(ctx)

	if err := input.Validate(); err != nil {
		s.metrics.RecordStageRun("blueprint", "invalid_input", time.Since(start))
		return domain.CampaignBlueprint{}, err
	}

	var insights domain.SmartInsights
	if _, err := s.store.Get(ctx, domain.KeyInsights, &insights); err != nil {
		s.metrics.RecordStageRun("blueprint", "missing_input", time.Since(start))
		if errors.Is(err, domain.ErrSnapshotMissing) {
			return domain.CampaignBlueprint{}, fmt.Errorf("no insights generated yet: %w", err)
		}
		return domain.CampaignBlueprint{}, fmt.Errorf("failed to read insights: %w", err)
	}

	if err := s.checkInsightsFresh(ctx, insights); err != nil {
		s.metrics.RecordStageRun("blueprint", "stale_input", time.Since(start))
		return domain.CampaignBlueprint{}, err
	}

	log.WithField("brand", input.BrandName).Info("Starting blueprint stage")

	stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()

	blueprint, err := s.generator.GenerateBlueprint(stageCtx, input, insights)
	if err != nil {
		status := "failed"
		if errors.Is(err, context.DeadlineExceeded) {
			status = "timeout"
			err = fmt.Errorf("%w: blueprint generation exceeded %s", domain.ErrStageTimeout, s.stageTimeout)
		}
		s.metrics.RecordStageRun("blueprint", status, time.Since(start))
		log.WithError(err).Error("Blueprint stage failed")
		return domain.CampaignBlueprint{}, err
	}

	s.metrics.RecordStageRun("blueprint", "success", time.Since(start))
	return blueprint, nil
}

// checkInsightsFresh compares the insights' recorded source sequence with
// the current handoff snapshot. A newer handoff, or a handoff that no
// longer exists, makes the insights stale.
func (s *CampaignService) checkInsightsFresh(ctx context.Context, insights domain.SmartInsights) error {
	var handoff []domain.AdAnalysis
	meta, err := s.store.Get(ctx, domain.KeyInsightInput, &handoff)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotMissing) {
			return fmt.Errorf("%w: insight source snapshot no longer exists", domain.ErrStaleInput)
		}
		return fmt.Errorf("failed to read insight input: %w", err)
	}
	if insights.SourceSequence != meta.Sequence {
		return fmt.Errorf("%w: insights derive from sequence %d, current is %d",
			domain.ErrStaleInput, insights.SourceSequence, meta.Sequence)
	}
	return nil
}

// Complete runs the asset step and appends the finished campaign to the
// dashboard. An image provider failure degrades to the placeholder visual
// instead of failing; the wizard always reaches a terminal summary.
func (s *CampaignService) Complete(ctx context.Context, input domain.CampaignInput, blueprint domain.CampaignBlueprint) (domain.CampaignSummary, error) {
	start := time.Now()
	s.metrics.IncStagesInProgress()
	defer s.metrics.DecStagesInProgress()

	log := s.logger.WithContext(ctx)

	if err := input.Validate(); err != nil {
		s.metrics.RecordStageRun("asset", "invalid_input", time.Since(start))
		return domain.CampaignSummary{}, err
	}
	if blueprint.IsZero() {
		s.metrics.RecordStageRun("asset", "invalid_input", time.Since(start))
		return domain.CampaignSummary{}, &domain.ValidationError{Field: "blueprint"}
	}

	stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()

	imageURL, err := s.imageGen.GenerateImage(stageCtx, input, blueprint)
	degraded := err != nil
	if degraded {
		imageURL = s.placeholderURL
		log.WithError(err).WithField("brand", input.BrandName).Warn("Image generation failed, using placeholder")
	}

	var analysis []domain.AdAnalysis
	if _, err := s.store.Get(ctx, domain.KeyAnalysis, &analysis); err != nil && !errors.Is(err, domain.ErrSnapshotMissing) {
		s.metrics.RecordStageRun("asset", "failed", time.Since(start))
		return domain.CampaignSummary{}, fmt.Errorf("failed to read analysis: %w", err)
	}
	var insights domain.SmartInsights
	if _, err := s.store.Get(ctx, domain.KeyInsights, &insights); err != nil && !errors.Is(err, domain.ErrSnapshotMissing) {
		s.metrics.RecordStageRun("asset", "failed", time.Since(start))
		return domain.CampaignSummary{}, fmt.Errorf("failed to read insights: %w", err)
	}

	summary := domain.CampaignSummary{
		ID:             uuid.New().String(),
		CreatedAt:      time.Now().UTC(),
		BrandName:      input.BrandName,
		Analysis:       analysis,
		Insights:       insights,
		Blueprint:      blueprint,
		GeneratedImage: imageURL,
		Degraded:       degraded,
		Status:         domain.CampaignStatusCompleted,
	}

	var campaigns []domain.CampaignSummary
	if _, err := s.store.Get(ctx, domain.KeyCampaigns, &campaigns); err != nil && !errors.Is(err, domain.ErrSnapshotMissing) {
		s.metrics.RecordStageRun("asset", "persist_failed", time.Since(start))
		return domain.CampaignSummary{}, fmt.Errorf("failed to read campaigns: %w", err)
	}

	// Newest first, matching the dashboard's display order.
	campaigns = append([]domain.CampaignSummary{summary}, campaigns...)
	if _, err := s.store.Put(ctx, domain.KeyCampaigns, campaigns); err != nil {
		s.metrics.RecordStageRun("asset", "persist_failed", time.Since(start))
		return domain.CampaignSummary{}, fmt.Errorf("failed to persist campaign: %w", err)
	}

	s.metrics.RecordStageRun("asset", "success", time.Since(start))
	s.metrics.RecordCampaignSaved(degraded)
	log.WithFields(map[string]any{
		"campaign_id": summary.ID,
		"brand":       summary.BrandName,
		"degraded":    degraded,
	}).Info("Campaign completed")

	return summary, nil
}

// List returns the dashboard campaigns, newest first. No snapshot means
// an empty dashboard.
func (s *CampaignService) List(ctx context.Context) ([]domain.CampaignSummary, error) {
	var campaigns []domain.CampaignSummary
	if _, err := s.store.Get(ctx, domain.KeyCampaigns, &campaigns); err != nil {
		if errors.Is(err, domain.ErrSnapshotMissing) {
			return []domain.CampaignSummary{}, nil
		}
		return nil, fmt.Errorf("failed to read campaigns: %w", err)
	}
	return campaigns, nil
}
