// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package kvstore is the Badger record store, selected with
// DATABASE_ENGINE=badger.
//
// Records are JSON documents under "rec/<kind>/<id>", with ids zero-padded
// so prefix iteration returns them in id order. "ext/<kind>/<tmdbId>" maps a
// TMDB id back to its record and enforces uniqueness inside the same
// transaction that writes the record. Ids come from a badger.Sequence per
// kind. Filters and aggregates are evaluated in Go with models.Filter.Match.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

const (
	recordPrefix   = "rec/"
	externalPrefix = "ext/"
	sequencePrefix = "seq/"

	// sequenceBandwidth ids are leased per badger.Sequence refill.
	sequenceBandwidth = 100

	// maxConflictRetries bounds retries of a write that lost a
	// serializable-snapshot conflict.
	maxConflictRetries = 5

	// gcRatio is the discard ratio for value log garbage collection.
	gcRatio = 0.5
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("kvstore: closed")

// Store implements catalog.Store on Badger.
type Store struct {
	db       *badger.DB
	inMemory bool

	mu     sync.Mutex
	seqs   map[models.Kind]*badger.Sequence
	closed bool
}

// Open opens (or creates) a store at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	return open(opts, false)
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts, true)
}

func open(opts badger.Options, inMemory bool) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &Store{db: db, inMemory: inMemory, seqs: make(map[models.Kind]*badger.Sequence, len(models.Kinds))}
	for _, kind := range models.Kinds {
		seq, err := db.GetSequence([]byte(sequencePrefix+string(kind)), sequenceBandwidth)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("open %s sequence: %w", kind, err)
		}
		s.seqs[kind] = seq
	}

	logging.Info().
		Str("path", opts.Dir).
		Bool("in_memory", inMemory).
		Msg("Badger record store ready")
	return s, nil
}

func recordKey(kind models.Kind, id int64) []byte {
	return []byte(fmt.Sprintf("%s%s/%020d", recordPrefix, kind, id))
}

func recordScanPrefix(kind models.Kind) []byte {
	return []byte(recordPrefix + string(kind) + "/")
}

func externalKey(kind models.Kind, externalID int64) []byte {
	return []byte(externalPrefix + string(kind) + "/" + strconv.FormatInt(externalID, 10))
}

func checkKind(kind models.Kind) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown media kind %q", kind)
	}
	return nil
}

func now() time.Time {
	return time.Now().UTC()
}

// nextID draws the next id for kind. Ids start at 1.
func (s *Store) nextID(kind models.Kind) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	n, err := s.seqs[kind].Next()
	if err != nil {
		return 0, fmt.Errorf("allocate %s id: %w", kind, err)
	}
	return int64(n) + 1, nil
}

// update runs fn in a read-write transaction, retrying on conflicts.
func (s *Store) update(fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func getRecord(txn *badger.Txn, key []byte) (*models.Record, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var rec models.Record
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	}); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &rec, nil
}

func putRecord(txn *badger.Txn, kind models.Kind, rec *models.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return txn.Set(recordKey(kind, rec.ID), data)
}

// claimExternalID writes the ext index entry unless another record holds it.
func claimExternalID(txn *badger.Txn, kind models.Kind, externalID, id int64) error {
	key := externalKey(kind, externalID)
	item, err := txn.Get(key)
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
	case err != nil:
		return err
	default:
		var owner int64
		if err := item.Value(func(val []byte) error {
			owner, err = strconv.ParseInt(string(val), 10, 64)
			return err
		}); err != nil {
			return fmt.Errorf("decode tmdbId index: %w", err)
		}
		if owner != id {
			return fmt.Errorf("%w: tmdbId %d belongs to %s %d", models.ErrDuplicateExternalID, externalID, kind, owner)
		}
	}
	return txn.Set(key, []byte(strconv.FormatInt(id, 10)))
}

// Create inserts a record with defaults applied.
func (s *Store) Create(ctx context.Context, kind models.Kind, in models.NewRecord) (*models.Record, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	start := time.Now()

	id, err := s.nextID(kind)
	if err != nil {
		return nil, err
	}
	rec := in.Build()
	rec.ID = id
	rec.CreatedAt = now()
	rec.UpdatedAt = rec.CreatedAt

	err = s.update(func(txn *badger.Txn) error {
		if rec.ExternalID != nil {
			if err := claimExternalID(txn, kind, *rec.ExternalID, rec.ID); err != nil {
				return err
			}
		}
		return putRecord(txn, kind, &rec)
	})
	metrics.RecordDBQuery("insert", kind.Table(), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", kind, err)
	}
	return &rec, nil
}

// FindByID returns models.ErrNotFound when the id is unknown.
func (s *Store) FindByID(ctx context.Context, kind models.Kind, id int64) (*models.Record, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	var rec *models.Record
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = getRecord(txn, recordKey(kind, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindByExternalID resolves the ext index.
func (s *Store) FindByExternalID(ctx context.Context, kind models.Kind, externalID int64) (*models.Record, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	var rec *models.Record
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = findByExternalID(txn, kind, externalID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func findByExternalID(txn *badger.Txn, kind models.Kind, externalID int64) (*models.Record, error) {
	item, err := txn.Get(externalKey(kind, externalID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var id int64
	if err := item.Value(func(val []byte) error {
		id, err = strconv.ParseInt(string(val), 10, 64)
		return err
	}); err != nil {
		return nil, fmt.Errorf("decode tmdbId index: %w", err)
	}
	return getRecord(txn, recordKey(kind, id))
}

// FindByExternalIDs resolves many TMDB ids in one read transaction.
func (s *Store) FindByExternalIDs(ctx context.Context, kind models.Kind, externalIDs []int64) (map[int64]*models.Record, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	found := make(map[int64]*models.Record, len(externalIDs))
	start := time.Now()
	err := s.db.View(func(txn *badger.Txn) error {
		for _, ext := range externalIDs {
			rec, err := findByExternalID(txn, kind, ext)
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			found[ext] = rec
		}
		return nil
	})
	metrics.RecordDBQuery("find_by_tmdb_ids", kind.Table(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return found, nil
}

// scan calls fn for every record of kind matching filter, in id order.
func (s *Store) scan(ctx context.Context, kind models.Kind, filter models.Filter, fn func(*models.Record)) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := recordScanPrefix(kind)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec models.Record
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("decode record: %w", err)
			}
			if filter.Match(&rec) {
				fn(&rec)
			}
		}
		return nil
	})
}

// FindMany returns the filtered records in id order.
func (s *Store) FindMany(ctx context.Context, kind models.Kind, filter models.Filter) ([]models.Record, error) {
	recs := []models.Record{}
	start := time.Now()
	err := s.scan(ctx, kind, filter, func(r *models.Record) {
		recs = append(recs, *r)
	})
	metrics.RecordDBQuery("find_many", kind.Table(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Aggregate folds the filtered subset into scalar statistics.
func (s *Store) Aggregate(ctx context.Context, kind models.Kind, filter models.Filter) (models.AggregateStats, error) {
	var (
		stats models.AggregateStats
		sum   float64
		rated int
	)
	start := time.Now()
	err := s.scan(ctx, kind, filter, func(r *models.Record) {
		stats.Count++
		if r.Rating != nil {
			v := *r.Rating
			sum += v
			rated++
			if stats.MinRating == nil || v < *stats.MinRating {
				stats.MinRating = &v
			}
			if stats.MaxRating == nil || v > *stats.MaxRating {
				stats.MaxRating = &v
			}
		}
		if stats.FirstCreatedAt == nil || r.CreatedAt.Before(*stats.FirstCreatedAt) {
			t := r.CreatedAt
			stats.FirstCreatedAt = &t
		}
		if stats.LastUpdatedAt == nil || r.UpdatedAt.After(*stats.LastUpdatedAt) {
			t := r.UpdatedAt
			stats.LastUpdatedAt = &t
		}
	})
	metrics.RecordDBQuery("aggregate", kind.Table(), time.Since(start), err)
	if err != nil {
		return models.AggregateStats{}, err
	}
	if rated > 0 {
		avg := sum / float64(rated)
		stats.AvgRating = &avg
	}
	return stats, nil
}

// Count counts the filtered subset.
func (s *Store) Count(ctx context.Context, kind models.Kind, filter models.Filter) (int, error) {
	n := 0
	start := time.Now()
	err := s.scan(ctx, kind, filter, func(*models.Record) { n++ })
	metrics.RecordDBQuery("count", kind.Table(), time.Since(start), err)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Update applies the patch and moves the ext index entry when tmdbId changes.
func (s *Store) Update(ctx context.Context, kind models.Kind, id int64, patch models.Patch) (*models.Record, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	var out *models.Record
	start := time.Now()
	err := s.update(func(txn *badger.Txn) error {
		rec, err := getRecord(txn, recordKey(kind, id))
		if err != nil {
			return err
		}
		oldExt := rec.ExternalID
		patch.Apply(rec)
		rec.UpdatedAt = now()

		if patch.ExternalID.Set {
			if oldExt != nil && (rec.ExternalID == nil || *rec.ExternalID != *oldExt) {
				if err := txn.Delete(externalKey(kind, *oldExt)); err != nil {
					return err
				}
			}
			if rec.ExternalID != nil {
				if err := claimExternalID(txn, kind, *rec.ExternalID, rec.ID); err != nil {
					return err
				}
			}
		}
		if err := putRecord(txn, kind, rec); err != nil {
			return err
		}
		out = rec
		return nil
	})
	metrics.RecordDBQuery("update", kind.Table(), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s %d: %w", kind, id, err)
	}
	return out, nil
}

// Delete removes the record and its ext index entry.
func (s *Store) Delete(ctx context.Context, kind models.Kind, id int64) (*models.Record, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	var out *models.Record
	start := time.Now()
	err := s.update(func(txn *badger.Txn) error {
		rec, err := getRecord(txn, recordKey(kind, id))
		if err != nil {
			return err
		}
		if rec.ExternalID != nil {
			if err := txn.Delete(externalKey(kind, *rec.ExternalID)); err != nil {
				return err
			}
		}
		if err := txn.Delete(recordKey(kind, id)); err != nil {
			return err
		}
		out = rec
		return nil
	})
	metrics.RecordDBQuery("delete", kind.Table(), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s %d: %w", kind, id, err)
	}
	return out, nil
}

// Ping fails once the store is closed.
func (s *Store) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return ErrClosed
	}
	return nil
}

// Close releases unused sequence leases and closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for kind, seq := range s.seqs {
		if err := seq.Release(); err != nil {
			logging.Warn().Err(err).Str("kind", string(kind)).Msg("Failed to release id sequence")
		}
	}
	s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	return nil
}
