package domain

import "time"

// SnapshotSchemaVersion tags every persisted snapshot envelope. Bump it
// when an entity shape changes; readers reject anything else.
const SnapshotSchemaVersion = 1

// Snapshot keys. These are the only names the pipeline persists under;
// all read/write sites go through the stage services.
const (
	KeySelectedAds  = "selectedAdsForAnalysis"
	KeyAnalysis     = "adAnalysisResults"
	KeyInsightInput = "adAnalysisForInsights"
	KeyInsights     = "generatedInsights"
	KeyCampaigns    = "dashboardCampaigns"
)

// SnapshotMeta describes a persisted snapshot: its schema version, the
// per-key monotonic write sequence, and when it was written. The sequence
// lets a consumer detect that its input changed underneath it.
type SnapshotMeta struct {
	SchemaVersion int       `json:"schema_version"`
	Sequence      uint64    `json:"sequence"`
	SavedAt       time.Time `json:"saved_at"`
}
