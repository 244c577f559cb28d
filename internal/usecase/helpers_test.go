package usecase

import (
	"context"
	"testing"

	"advision/internal/domain"
	"advision/internal/infrastructure"
	"advision/pkg/logger"
	"advision/pkg/metrics"

	"github.com/stretchr/testify/require"
)

// Shared across the package's tests. promauto registers collectors
// globally, so New must run exactly once per test binary.
var testMetrics = metrics.New()

func testLogger() *logger.Logger {
	return logger.New("error")
}

func newStore(t *testing.T) *infrastructure.SnapshotStore {
	t.Helper()
	store, err := infrastructure.NewSnapshotStore("", testLogger(), testMetrics)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newCatalog(t *testing.T) *infrastructure.AdCatalog {
	t.Helper()
	return infrastructure.NewAdCatalog(testLogger())
}

func catalogAds(t *testing.T, catalog *infrastructure.AdCatalog, n int) []domain.Ad {
	t.Helper()
	ads, err := catalog.Search(context.Background(), domain.AdFilter{Limit: n})
	require.NoError(t, err)
	require.Len(t, ads, n)
	return ads
}

type fakeAnalyzer struct {
	fn func(ctx context.Context, ads []domain.Ad) ([]domain.AdAnalysis, error)
}

func (f *fakeAnalyzer) AnalyzeAds(ctx context.Context, ads []domain.Ad) ([]domain.AdAnalysis, error) {
	return f.fn(ctx, ads)
}

type fakeSynthesizer struct {
	fn func(ctx context.Context, analysis []domain.AdAnalysis) (domain.SmartInsights, error)
}

func (f *fakeSynthesizer) GenerateInsights(ctx context.Context, analysis []domain.AdAnalysis) (domain.SmartInsights, error) {
	return f.fn(ctx, analysis)
}

type fakeGenerator struct {
	fn func(ctx context.Context, input domain.CampaignInput, insights domain.SmartInsights) (domain.CampaignBlueprint, error)
}

func (f *fakeGenerator) GenerateBlueprint(ctx context.Context, input domain.CampaignInput, insights domain.SmartInsights) (domain.CampaignBlueprint, error) {
	return f.fn(ctx, input, insights)
}

type fakeImageGen struct {
	fn func(ctx context.Context, input domain.CampaignInput, blueprint domain.CampaignBlueprint) (string, error)
}

func (f *fakeImageGen) GenerateImage(ctx context.Context, input domain.CampaignInput, blueprint domain.CampaignBlueprint) (string, error) {
	return f.fn(ctx, input, blueprint)
}

type fakeResponder struct {
	fn func(ctx context.Context, messages []domain.ChatMessage) (string, error)
}

func (f *fakeResponder) Chat(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	return f.fn(ctx, messages)
}

// echoAnalysis produces one minimal result per ad, keyed by its ID.
func echoAnalysis(ads []domain.Ad) []domain.AdAnalysis {
	results := make([]domain.AdAnalysis, 0, len(ads))
	for _, ad := range ads {
		results = append(results, domain.AdAnalysis{AdID: ad.ID, Ad: ad})
	}
	return results
}
