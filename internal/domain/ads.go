package domain

// Ad is one creative from the competitor ad catalog. ID is a synthetic
// identifier assigned at ingestion; ad_snapshot_url is display data, not
// identity.
type Ad struct {
	ID             string  `json:"id"`
	AdCreativeBody string  `json:"ad_creative_body"`
	AdSnapshotURL  string  `json:"ad_snapshot_url"`
	Spend          float64 `json:"spend"`
	Impressions    int     `json:"impressions"`
	Country        string  `json:"country"`
	BusinessType   string  `json:"business_type"`
	Category       string  `json:"category"`
	Platform       string  `json:"platform"`
	AdType         string  `json:"ad_type"`
	TargetAudience string  `json:"target_audience"`
	CreatedDate    string  `json:"created_date"`
}

// AdFilter narrows a catalog search. Zero values mean "no constraint"
// except Limit, which falls back to a catalog default.
type AdFilter struct {
	Query          string
	Countries      []string
	MinSpend       float64
	MaxSpend       float64
	MinImpressions int
	MaxImpressions int
	Limit          int
	Offset         int
}

// FilterOptions lists the distinct values the catalog can filter on.
type FilterOptions struct {
	BusinessTypes []string `json:"business_types"`
	Categories    []string `json:"categories"`
	Countries     []string `json:"countries"`
}
