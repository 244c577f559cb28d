package infrastructure

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"advision/internal/domain"
	"advision/pkg/logger"
	"advision/pkg/metrics"

	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Shared across the package's tests. promauto registers collectors
// globally, so New must run exactly once per test binary.
var testMetrics = metrics.New()

func testLogger() *logger.Logger {
	return logger.New("error")
}

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	store, err := NewSnapshotStore("", testLogger(), testMetrics)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSnapshotStoreMissingKey(t *testing.T) {
	store := newTestStore(t)

	var out []domain.Ad
	_, err := store.Get(context.Background(), domain.KeySelectedAds, &out)
	assert.ErrorIs(t, err, domain.ErrSnapshotMissing)
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := []domain.Ad{
		{ID: "a1", AdCreativeBody: "Flash sale", Spend: 1200.50, Impressions: 34000, Country: "US"},
		{ID: "a2", AdCreativeBody: "New launch", Spend: 800, Impressions: 12000, Country: "UK"},
	}

	putMeta, err := store.Put(ctx, domain.KeySelectedAds, in)
	require.NoError(t, err)
	assert.Equal(t, domain.SnapshotSchemaVersion, putMeta.SchemaVersion)
	assert.Equal(t, uint64(1), putMeta.Sequence)
	assert.WithinDuration(t, time.Now().UTC(), putMeta.SavedAt, time.Minute)

	var out []domain.Ad
	getMeta, err := store.Get(ctx, domain.KeySelectedAds, &out)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, putMeta.Sequence, getMeta.Sequence)
}

func TestSnapshotStoreSequenceIncrements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for want := uint64(1); want <= 3; want++ {
		meta, err := store.Put(ctx, domain.KeyAnalysis, []string{"v"})
		require.NoError(t, err)
		assert.Equal(t, want, meta.Sequence)
	}

	// Sequences are per key.
	meta, err := store.Put(ctx, domain.KeyInsights, "other")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), meta.Sequence)
}

func TestSnapshotStoreCorruptValueTreatedAsAbsent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(domain.KeyInsights), []byte("{not json"))
	})
	require.NoError(t, err)

	var out domain.SmartInsights
	_, err = store.Get(ctx, domain.KeyInsights, &out)
	assert.ErrorIs(t, err, domain.ErrSnapshotMissing)

	// A fresh write over the corrupt value restarts the sequence.
	meta, err := store.Put(ctx, domain.KeyInsights, domain.SmartInsights{})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), meta.Sequence)
}

func TestSnapshotStoreUndecodablePayloadTreatedAsAbsent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, domain.KeyAnalysis, "just a string")
	require.NoError(t, err)

	var out []domain.AdAnalysis
	_, err = store.Get(ctx, domain.KeyAnalysis, &out)
	assert.ErrorIs(t, err, domain.ErrSnapshotMissing)
}

func TestSnapshotStoreSchemaMismatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	stale, err := json.Marshal(envelope{
		SchemaVersion: domain.SnapshotSchemaVersion + 1,
		Sequence:      7,
		SavedAt:       time.Now().UTC(),
		Payload:       json.RawMessage(`{}`),
	})
	require.NoError(t, err)
	err = store.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(domain.KeyCampaigns), stale)
	})
	require.NoError(t, err)

	var out []domain.CampaignSummary
	_, err = store.Get(ctx, domain.KeyCampaigns, &out)
	assert.ErrorIs(t, err, domain.ErrSnapshotSchema)
}

func TestSnapshotStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, domain.KeySelectedAds, []string{"x"})
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, domain.KeySelectedAds))

	_, err = store.Get(ctx, domain.KeySelectedAds, nil)
	assert.ErrorIs(t, err, domain.ErrSnapshotMissing)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete(ctx, domain.KeySelectedAds))
}
