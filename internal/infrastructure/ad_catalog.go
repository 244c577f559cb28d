package infrastructure

import (
	"context"
	"sort"
	"strings"
	"sync"

	"advision/internal/domain"
	"advision/pkg/logger"

	"github.com/google/uuid"
)

const defaultSearchLimit = 12

// AdCatalog implements domain.AdCatalog over the built-in dataset. Every
// ad receives a synthetic UUID at ingestion; that ID is the only identity
// the rest of the pipeline uses.
type AdCatalog struct {
	ads    []domain.Ad
	byID   map[string]domain.Ad
	mutex  sync.RWMutex
	logger *logger.Logger
}

func NewAdCatalog(logger *logger.Logger) *AdCatalog {
	c := &AdCatalog{
		byID:   make(map[string]domain.Ad, len(seedAds)),
		logger: logger,
	}
	for _, ad := range seedAds {
		ad.ID = uuid.New().String()
		c.ads = append(c.ads, ad)
		c.byID[ad.ID] = ad
	}
	logger.WithField("count", len(c.ads)).Info("Seeded ad catalog")
	return c
}

func (c *AdCatalog) Search(ctx context.Context, filter domain.AdFilter) ([]domain.Ad, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	query := strings.ToLower(strings.TrimSpace(filter.Query))

	var matched []domain.Ad
	for _, ad := range c.ads {
		if query != "" && !matchesQuery(ad, query) {
			continue
		}
		if len(filter.Countries) > 0 && !containsFold(filter.Countries, ad.Country) {
			continue
		}
		if ad.Spend < filter.MinSpend {
			continue
		}
		if filter.MaxSpend > 0 && ad.Spend > filter.MaxSpend {
			continue
		}
		if ad.Impressions < filter.MinImpressions {
			continue
		}
		if filter.MaxImpressions > 0 && ad.Impressions > filter.MaxImpressions {
			continue
		}
		matched = append(matched, ad)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []domain.Ad{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"query":   filter.Query,
		"matched": len(matched),
		"limit":   limit,
		"offset":  offset,
	}).Debug("Catalog search")

	return matched[offset:end], nil
}

func (c *AdCatalog) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	businessTypes := make(map[string]struct{})
	categories := make(map[string]struct{})
	countries := make(map[string]struct{})
	for _, ad := range c.ads {
		businessTypes[ad.BusinessType] = struct{}{}
		categories[ad.Category] = struct{}{}
		countries[ad.Country] = struct{}{}
	}

	return domain.FilterOptions{
		BusinessTypes: sortedKeys(businessTypes),
		Categories:    sortedKeys(categories),
		Countries:     sortedKeys(countries),
	}, nil
}

func (c *AdCatalog) Get(ctx context.Context, id string) (domain.Ad, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	ad, ok := c.byID[id]
	return ad, ok
}

func matchesQuery(ad domain.Ad, query string) bool {
	return strings.Contains(strings.ToLower(ad.AdCreativeBody), query) ||
		strings.Contains(strings.ToLower(ad.BusinessType), query) ||
		strings.Contains(strings.ToLower(ad.Category), query) ||
		strings.Contains(strings.ToLower(ad.TargetAudience), query)
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
