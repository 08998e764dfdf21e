// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/database/query"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

const recordColumns = "id, tmdb_id, title, rating, wishlist, watched, view_count, review, created_at, updated_at"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(s rowScanner) (*models.Record, error) {
	var (
		rec     models.Record
		tmdbID  sql.NullInt64
		rating  sql.NullFloat64
		review  sql.NullString
		viewCnt int64
	)
	if err := s.Scan(&rec.ID, &tmdbID, &rec.Title, &rating, &rec.Wishlist, &rec.Watched, &viewCnt, &review, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	if tmdbID.Valid {
		rec.ExternalID = &tmdbID.Int64
	}
	if rating.Valid {
		rec.Rating = &rating.Float64
	}
	if review.Valid {
		rec.Review = &review.String
	}
	rec.ViewCount = int(viewCnt)
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return &rec, nil
}

// tableFor guards the only identifier interpolated into SQL.
func tableFor(kind models.Kind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown media kind %q", kind)
	}
	return kind.Table(), nil
}

// nullable unwraps an optional value into a driver argument.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// now is truncated to DuckDB's microsecond TIMESTAMP precision.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// classify maps driver errors onto the store's sentinels.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return models.ErrNotFound
	case isUniqueConstraintError(err):
		return fmt.Errorf("%w: %v", models.ErrDuplicateExternalID, err)
	default:
		return err
	}
}

// Create inserts a record with defaults applied.
func (db *DB) Create(ctx context.Context, kind models.Kind, in models.NewRecord) (*models.Record, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rec := in.Build()
	ts := now()
	q := fmt.Sprintf(`INSERT INTO %s (tmdb_id, title, rating, wishlist, watched, view_count, review, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING %s`, table, recordColumns)

	start := time.Now()
	out, err := scanRecord(db.conn.QueryRowContext(ctx, q,
		nullable(rec.ExternalID), rec.Title, nullable(rec.Rating), rec.Wishlist, rec.Watched,
		int64(rec.ViewCount), nullable(rec.Review), ts, ts))
	err = classify(err)
	metrics.RecordDBQuery("insert", table, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", kind, err)
	}
	return out, nil
}

// FindByID returns models.ErrNotFound when the id is unknown.
func (db *DB) FindByID(ctx context.Context, kind models.Kind, id int64) (*models.Record, error) {
	return db.findOne(ctx, kind, "find_by_id", "id = ?", id)
}

// FindByExternalID returns models.ErrNotFound when no record links to the
// TMDB id.
func (db *DB) FindByExternalID(ctx context.Context, kind models.Kind, externalID int64) (*models.Record, error) {
	return db.findOne(ctx, kind, "find_by_tmdb_id", "tmdb_id = ?", externalID)
}

func (db *DB) findOne(ctx context.Context, kind models.Kind, op, cond string, arg any) (*models.Record, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s", recordColumns, table, cond)
	start := time.Now()
	rec, err := scanRecord(db.conn.QueryRowContext(ctx, q, arg))
	err = classify(err)
	metricErr := err
	if errors.Is(err, models.ErrNotFound) {
		metricErr = nil
	}
	metrics.RecordDBQuery(op, table, time.Since(start), metricErr)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindByExternalIDs looks up many TMDB ids in one query.
func (db *DB) FindByExternalIDs(ctx context.Context, kind models.Kind, externalIDs []int64) (map[int64]*models.Record, error) {
	found := make(map[int64]*models.Record, len(externalIDs))
	if len(externalIDs) == 0 {
		return found, nil
	}

	where, args := query.NewWhereBuilder().AddInt64In("tmdb_id", externalIDs).BuildWithPrefix()
	recs, err := db.selectRecords(ctx, kind, "find_by_tmdb_ids", where, args)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		found[*recs[i].ExternalID] = &recs[i]
	}
	return found, nil
}

// FindMany returns the filtered records in id order.
func (db *DB) FindMany(ctx context.Context, kind models.Kind, filter models.Filter) ([]models.Record, error) {
	where, args := query.NewWhereBuilder().AddFilter(filter).BuildWithPrefix()
	return db.selectRecords(ctx, kind, "find_many", where, args)
}

func (db *DB) selectRecords(ctx context.Context, kind models.Kind, op, where string, args []interface{}) ([]models.Record, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	q := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY id", recordColumns, table, where)
	start := time.Now()
	recs, err := db.queryRecords(ctx, q, args)
	metrics.RecordDBQuery(op, table, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	return recs, nil
}

func (db *DB) queryRecords(ctx context.Context, q string, args []interface{}) ([]models.Record, error) {
	rows, err := db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	recs := []models.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

// Aggregate computes count, rating statistics and timestamp bounds over the
// filtered subset.
func (db *DB) Aggregate(ctx context.Context, kind models.Kind, filter models.Filter) (models.AggregateStats, error) {
	var stats models.AggregateStats
	table, err := tableFor(kind)
	if err != nil {
		return stats, err
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	where, args := query.NewWhereBuilder().AddFilter(filter).BuildWithPrefix()
	q := fmt.Sprintf(`SELECT COUNT(*), AVG(rating), MIN(rating), MAX(rating), MIN(created_at), MAX(updated_at)
		FROM %s %s`, table, where)

	var (
		count        int64
		avg, lo, hi  sql.NullFloat64
		firstCreated sql.NullTime
		lastUpdated  sql.NullTime
	)
	start := time.Now()
	err = db.conn.QueryRowContext(ctx, q, args...).Scan(&count, &avg, &lo, &hi, &firstCreated, &lastUpdated)
	metrics.RecordDBQuery("aggregate", table, time.Since(start), err)
	if err != nil {
		return stats, fmt.Errorf("failed to aggregate %s: %w", table, err)
	}

	stats.Count = int(count)
	if avg.Valid {
		stats.AvgRating = &avg.Float64
	}
	if lo.Valid {
		stats.MinRating = &lo.Float64
	}
	if hi.Valid {
		stats.MaxRating = &hi.Float64
	}
	if firstCreated.Valid {
		t := firstCreated.Time.UTC()
		stats.FirstCreatedAt = &t
	}
	if lastUpdated.Valid {
		t := lastUpdated.Time.UTC()
		stats.LastUpdatedAt = &t
	}
	return stats, nil
}

// Count counts the filtered subset.
func (db *DB) Count(ctx context.Context, kind models.Kind, filter models.Filter) (int, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	where, args := query.NewWhereBuilder().AddFilter(filter).BuildWithPrefix()
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", table, where)

	var count int64
	start := time.Now()
	err = db.conn.QueryRowContext(ctx, q, args...).Scan(&count)
	metrics.RecordDBQuery("count", table, time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return int(count), nil
}

// Update writes only the columns the patch sets, plus updated_at.
func (db *DB) Update(ctx context.Context, kind models.Kind, id int64, patch models.Patch) (*models.Record, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	sets, args := patchAssignments(patch)
	sets = append(sets, "updated_at = ?")
	args = append(args, now(), id)

	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = ? RETURNING %s", table, strings.Join(sets, ", "), recordColumns)
	start := time.Now()
	rec, err := scanRecord(db.conn.QueryRowContext(ctx, q, args...))
	err = classify(err)
	metrics.RecordDBQuery("update", table, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s %d: %w", kind, id, err)
	}
	return rec, nil
}

func patchAssignments(p models.Patch) ([]string, []interface{}) {
	var sets []string
	var args []interface{}
	if p.ExternalID.Set {
		sets = append(sets, "tmdb_id = ?")
		args = append(args, nullable(p.ExternalID.Value))
	}
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Rating.Set {
		sets = append(sets, "rating = ?")
		args = append(args, nullable(p.Rating.Value))
	}
	if p.Wishlist != nil {
		sets = append(sets, "wishlist = ?")
		args = append(args, *p.Wishlist)
	}
	if p.Watched != nil {
		sets = append(sets, "watched = ?")
		args = append(args, *p.Watched)
	}
	if p.ViewCount != nil {
		sets = append(sets, "view_count = ?")
		args = append(args, int64(*p.ViewCount))
	}
	if p.Review.Set {
		sets = append(sets, "review = ?")
		args = append(args, nullable(p.Review.Value))
	}
	return sets, args
}

// Delete removes the record and returns its last state.
func (db *DB) Delete(ctx context.Context, kind models.Kind, id int64) (*models.Record, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	q := fmt.Sprintf("DELETE FROM %s WHERE id = ? RETURNING %s", table, recordColumns)
	start := time.Now()
	rec, err := scanRecord(db.conn.QueryRowContext(ctx, q, id))
	err = classify(err)
	metrics.RecordDBQuery("delete", table, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s %d: %w", kind, id, err)
	}
	return rec, nil
}
