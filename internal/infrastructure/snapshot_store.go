package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"advision/internal/domain"
	"advision/pkg/logger"
	"advision/pkg/metrics"

	"github.com/dgraph-io/badger/v3"
)

// envelope wraps every persisted snapshot with the metadata needed to
// validate it on read.
type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Sequence      uint64          `json:"sequence"`
	SavedAt       time.Time       `json:"saved_at"`
	Payload       json.RawMessage `json:"payload"`
}

// SnapshotStore implements domain.SnapshotStore on BadgerDB. Each write
// bumps a per-key monotonic sequence inside a single transaction, so two
// racing writers cannot produce the same sequence number.
type SnapshotStore struct {
	db      *badger.DB
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewSnapshotStore opens the store at dataDir. An empty dataDir opens an
// in-memory store, used by tests and credential-less demo runs.
func NewSnapshotStore(dataDir string, logger *logger.Logger, metrics *metrics.Metrics) (*SnapshotStore, error) {
	var opts badger.Options
	if dataDir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dataDir)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}

	return &SnapshotStore{
		db:      db,
		logger:  logger,
		metrics: metrics,
	}, nil
}

func (s *SnapshotStore) Get(ctx context.Context, key string, out any) (domain.SnapshotMeta, error) {
	var env envelope

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &env)
		})
	})

	switch {
	case err == badger.ErrKeyNotFound:
		s.metrics.RecordSnapshotRead(key, "missing")
		return domain.SnapshotMeta{}, domain.ErrSnapshotMissing
	case err != nil:
		// Corrupt values are treated as absent rather than surfaced as
		// decode failures.
		s.metrics.RecordSnapshotRead(key, "corrupt")
		s.logger.WithContext(ctx).WithError(err).WithField("key", key).Warn("Discarding unreadable snapshot")
		return domain.SnapshotMeta{}, domain.ErrSnapshotMissing
	}

	if env.SchemaVersion != domain.SnapshotSchemaVersion {
		s.metrics.RecordSnapshotRead(key, "schema_mismatch")
		return domain.SnapshotMeta{}, fmt.Errorf("snapshot %q has schema version %d: %w",
			key, env.SchemaVersion, domain.ErrSnapshotSchema)
	}

	if out != nil {
		if err := json.Unmarshal(env.Payload, out); err != nil {
			s.metrics.RecordSnapshotRead(key, "corrupt")
			s.logger.WithContext(ctx).WithError(err).WithField("key", key).Warn("Discarding undecodable snapshot payload")
			return domain.SnapshotMeta{}, domain.ErrSnapshotMissing
		}
	}

	s.metrics.RecordSnapshotRead(key, "hit")
	return domain.SnapshotMeta{
		SchemaVersion: env.SchemaVersion,
		Sequence:      env.Sequence,
		SavedAt:       env.SavedAt,
	}, nil
}

func (s *SnapshotStore) Put(ctx context.Context, key string, value any) (domain.SnapshotMeta, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return domain.SnapshotMeta{}, fmt.Errorf("failed to encode snapshot %q: %w", key, err)
	}

	env := envelope{
		SchemaVersion: domain.SnapshotSchemaVersion,
		SavedAt:       time.Now().UTC(),
		Payload:       payload,
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		// Continue the sequence from the previous envelope. Unreadable
		// predecessors restart at zero, same as a fresh key.
		var prev envelope
		if item, err := txn.Get([]byte(key)); err == nil {
			_ = item.Value(func(val []byte) error {
				return json.Unmarshal(val, &prev)
			})
		}
		env.Sequence = prev.Sequence + 1

		encoded, err := json.Marshal(env)
		if err != nil {
			return err
		}
		return txn.Set([]byte(key), encoded)
	})
	if err != nil {
		return domain.SnapshotMeta{}, fmt.Errorf("failed to write snapshot %q: %w", key, err)
	}

	s.metrics.RecordSnapshotWrite(key)
	s.logger.WithContext(ctx).WithFields(map[string]any{
		"key":      key,
		"sequence": env.Sequence,
		"bytes":    len(payload),
	}).Debug("Wrote snapshot")

	return domain.SnapshotMeta{
		SchemaVersion: env.SchemaVersion,
		Sequence:      env.Sequence,
		SavedAt:       env.SavedAt,
	}, nil
}

func (s *SnapshotStore) Delete(ctx context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %q: %w", key, err)
	}
	s.logger.WithContext(ctx).WithField("key", key).Debug("Deleted snapshot")
	return nil
}

func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
