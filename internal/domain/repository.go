package domain

import "context"

// SnapshotStore persists named JSON snapshots.
//
// Get decodes the snapshot under key into out and returns its metadata.
// A missing or undecodable value returns ErrSnapshotMissing (corrupt data
// is treated as absent, never propagated as a decode failure); a schema
// version mismatch returns ErrSnapshotSchema.
type SnapshotStore interface {
	Get(ctx context.Context, key string, out any) (SnapshotMeta, error)
	Put(ctx context.Context, key string, value any) (SnapshotMeta, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// AdCatalog serves the competitor ad browser.
type AdCatalog interface {
	Search(ctx context.Context, filter AdFilter) ([]Ad, error)
	FilterOptions(ctx context.Context) (FilterOptions, error)
	Get(ctx context.Context, id string) (Ad, bool)
}

// AdAnalyzer produces one AdAnalysis per input ad in a single call.
// The result set is atomic: any per-ad failure fails the whole call.
type AdAnalyzer interface {
	AnalyzeAds(ctx context.Context, ads []Ad) ([]AdAnalysis, error)
}

// InsightSynthesizer derives one SmartInsights record from an analysis set.
type InsightSynthesizer interface {
	GenerateInsights(ctx context.Context, analysis []AdAnalysis) (SmartInsights, error)
}

// BlueprintGenerator builds a campaign blueprint from validated user
// input and the synthesized insights.
type BlueprintGenerator interface {
	GenerateBlueprint(ctx context.Context, input CampaignInput, insights SmartInsights) (CampaignBlueprint, error)
}

// ImageGenerator renders a campaign visual and returns its URL.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, input CampaignInput, blueprint CampaignBlueprint) (string, error)
}

// ChatResponder answers a marketing chat conversation.
type ChatResponder interface {
	Chat(ctx context.Context, messages []ChatMessage) (string, error)
}
