package infrastructure

import (
	"context"
	"sort"
	"testing"

	"advision/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdCatalogAssignsUniqueIDs(t *testing.T) {
	catalog := NewAdCatalog(testLogger())

	ads, err := catalog.Search(context.Background(), domain.AdFilter{Limit: len(seedAds)})
	require.NoError(t, err)
	require.Len(t, ads, len(seedAds))

	seen := make(map[string]bool)
	for _, ad := range ads {
		assert.NotEmpty(t, ad.ID)
		assert.False(t, seen[ad.ID], "duplicate id %s", ad.ID)
		seen[ad.ID] = true
	}
}

func TestAdCatalogSearchByQuery(t *testing.T) {
	catalog := NewAdCatalog(testLogger())
	ctx := context.Background()

	ads, err := catalog.Search(ctx, domain.AdFilter{Query: "fitness"})
	require.NoError(t, err)
	require.NotEmpty(t, ads)
	for _, ad := range ads {
		assert.Contains(t, []string{"Health & Fitness"}, ad.BusinessType)
	}

	none, err := catalog.Search(ctx, domain.AdFilter{Query: "nonexistent-term-xyz"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAdCatalogSearchByCountry(t *testing.T) {
	catalog := NewAdCatalog(testLogger())

	ads, err := catalog.Search(context.Background(), domain.AdFilter{Countries: []string{"uk", "CA"}})
	require.NoError(t, err)
	require.NotEmpty(t, ads)
	for _, ad := range ads {
		assert.Contains(t, []string{"UK", "CA"}, ad.Country)
	}
}

func TestAdCatalogSearchByRanges(t *testing.T) {
	catalog := NewAdCatalog(testLogger())

	ads, err := catalog.Search(context.Background(), domain.AdFilter{
		MinSpend:       10000,
		MaxSpend:       15000,
		MinImpressions: 100000,
	})
	require.NoError(t, err)
	require.NotEmpty(t, ads)
	for _, ad := range ads {
		assert.GreaterOrEqual(t, ad.Spend, 10000.0)
		assert.LessOrEqual(t, ad.Spend, 15000.0)
		assert.GreaterOrEqual(t, ad.Impressions, 100000)
	}
}

func TestAdCatalogSearchPagination(t *testing.T) {
	catalog := NewAdCatalog(testLogger())
	ctx := context.Background()

	first, err := catalog.Search(ctx, domain.AdFilter{Limit: 5})
	require.NoError(t, err)
	assert.Len(t, first, 5)

	second, err := catalog.Search(ctx, domain.AdFilter{Limit: 5, Offset: 5})
	require.NoError(t, err)
	assert.Len(t, second, 5)
	assert.NotEqual(t, first[0].ID, second[0].ID)

	// Default limit applies when none given.
	def, err := catalog.Search(ctx, domain.AdFilter{})
	require.NoError(t, err)
	assert.Len(t, def, defaultSearchLimit)

	// Offset past the end yields an empty page, not an error.
	past, err := catalog.Search(ctx, domain.AdFilter{Offset: 1000})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestAdCatalogFilterOptionsSorted(t *testing.T) {
	catalog := NewAdCatalog(testLogger())

	options, err := catalog.FilterOptions(context.Background())
	require.NoError(t, err)

	assert.True(t, sort.StringsAreSorted(options.BusinessTypes))
	assert.True(t, sort.StringsAreSorted(options.Categories))
	assert.True(t, sort.StringsAreSorted(options.Countries))
	assert.Contains(t, options.Countries, "US")
	assert.Contains(t, options.BusinessTypes, "E-commerce")
}

func TestAdCatalogGet(t *testing.T) {
	catalog := NewAdCatalog(testLogger())
	ctx := context.Background()

	ads, err := catalog.Search(ctx, domain.AdFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, ads, 1)

	got, ok := catalog.Get(ctx, ads[0].ID)
	require.True(t, ok)
	assert.Equal(t, ads[0], got)

	_, ok = catalog.Get(ctx, "no-such-id")
	assert.False(t, ok)
}
