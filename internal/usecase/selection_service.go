package usecase

import (
	"context"
	"errors"
	"fmt"

	"advision/internal/domain"
	"advision/pkg/logger"
	"advision/pkg/metrics"
)

// SelectionService manages the working set of ads picked for analysis.
// Every toggle persists immediately so the selection survives restarts.
type SelectionService struct {
	store   domain.SnapshotStore
	catalog domain.AdCatalog
	maxAds  int
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewSelectionService(
	store domain.SnapshotStore,
	catalog domain.AdCatalog,
	maxAds int,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *SelectionService {
	return &SelectionService{
		store:   store,
		catalog: catalog,
		maxAds:  maxAds,
		logger:  logger,
		metrics: metrics,
	}
}

// Current returns the persisted selection. No snapshot means an empty
// selection, not an error.
func (s *SelectionService) Current(ctx context.Context) ([]domain.Ad, error) {
	var selected []domain.Ad
	_, err := s.store.Get(ctx, domain.KeySelectedAds, &selected)
	if errors.Is(err, domain.ErrSnapshotMissing) {
		return []domain.Ad{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}
	return selected, nil
}

// Toggle adds the ad to the selection, or removes it when already
// present. Adding beyond the cap is a silent no-op; the unchanged
// selection is returned.
func (s *SelectionService) Toggle(ctx context.Context, adID string) ([]domain.Ad, error) {
	ad, ok := s.catalog.Get(ctx, adID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAdNotFound, adID)
	}

	selected, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, sel := range selected {
		if sel.ID == adID {
			idx = i
			break
		}
	}

	switch {
	case idx >= 0:
		selected = append(selected[:idx], selected[idx+1:]...)
	case len(selected) >= s.maxAds:
		s.logger.WithContext(ctx).WithFields(map[string]any{
			"ad_id": adID,
			"cap":   s.maxAds,
		}).Debug("Selection cap reached, toggle ignored")
		return selected, nil
	default:
		selected = append(selected, ad)
	}

	if _, err := s.store.Put(ctx, domain.KeySelectedAds, selected); err != nil {
		return nil, fmt.Errorf("failed to persist selection: %w", err)
	}

	return selected, nil
}

// Commit confirms the selection as the analysis input. It fails with
// ErrEmptySelection when nothing is selected; otherwise the already
// persisted snapshot is the committed input.
func (s *SelectionService) Commit(ctx context.Context) ([]domain.Ad, error) {
	selected, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, domain.ErrEmptySelection
	}

	s.logger.WithContext(ctx).WithField("selected", len(selected)).Info("Selection committed for analysis")
	return selected, nil
}

// Clear discards the selection snapshot.
func (s *SelectionService) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, domain.KeySelectedAds); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	return nil
}
