package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"advision/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightsRequireHandoff(t *testing.T) {
	store := newStore(t)
	calls := 0
	svc := NewInsightService(store, &fakeSynthesizer{fn: func(ctx context.Context, analysis []domain.AdAnalysis) (domain.SmartInsights, error) {
		calls++
		return domain.SmartInsights{}, nil
	}}, time.Second, testLogger(), testMetrics)

	_, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrSnapshotMissing)
	assert.Equal(t, 0, calls)
}

func TestInsightsRecordSourceSequence(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	// Two handoffs; insights must pin the latest sequence.
	_, err := store.Put(ctx, domain.KeyInsightInput, []domain.AdAnalysis{{AdID: "a1"}})
	require.NoError(t, err)
	_, err = store.Put(ctx, domain.KeyInsightInput, []domain.AdAnalysis{{AdID: "a1"}, {AdID: "a2"}})
	require.NoError(t, err)

	svc := NewInsightService(store, &fakeSynthesizer{fn: func(ctx context.Context, analysis []domain.AdAnalysis) (domain.SmartInsights, error) {
		assert.Len(t, analysis, 2)
		return domain.SmartInsights{
			CompetitiveAdvantage: domain.CompetitiveAdvantage{UniquePositioning: "stand out"},
		}, nil
	}}, time.Second, testLogger(), testMetrics)

	insights, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), insights.SourceSequence)

	persisted, _, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, insights, persisted)
	assert.Equal(t, "stand out", persisted.CompetitiveAdvantage.UniquePositioning)
}

func TestInsightsCollaboratorFailure(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	_, err := store.Put(ctx, domain.KeyInsightInput, []domain.AdAnalysis{{AdID: "a1"}})
	require.NoError(t, err)

	boom := errors.New("upstream exploded")
	svc := NewInsightService(store, &fakeSynthesizer{fn: func(ctx context.Context, analysis []domain.AdAnalysis) (domain.SmartInsights, error) {
		return domain.SmartInsights{}, boom
	}}, time.Second, testLogger(), testMetrics)

	_, err = svc.Run(ctx)
	assert.ErrorIs(t, err, boom)

	// Failed runs persist nothing.
	_, _, err = svc.Current(ctx)
	assert.ErrorIs(t, err, domain.ErrSnapshotMissing)
}

func TestInsightsTimeout(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	_, err := store.Put(ctx, domain.KeyInsightInput, []domain.AdAnalysis{{AdID: "a1"}})
	require.NoError(t, err)

	svc := NewInsightService(store, &fakeSynthesizer{fn: func(ctx context.Context, analysis []domain.AdAnalysis) (domain.SmartInsights, error) {
		<-ctx.Done()
		return domain.SmartInsights{}, ctx.Err()
	}}, 10*time.Millisecond, testLogger(), testMetrics)

	_, err = svc.Run(ctx)
	assert.ErrorIs(t, err, domain.ErrStageTimeout)
}
