package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/polycore/pkg/order"
	"github.com/mesh-intelligence/polycore/pkg/types"
)

// Tally is a saved frequency map.
type Tally struct {
	TallyID   string
	Name      string
	CreatedAt time.Time
	Counts    *order.FrequencyMap[string]
}

// TallySummary describes a tally without its counts.
type TallySummary struct {
	TallyID   string
	Name      string
	CreatedAt time.Time
	Keys      int
	Total     int
}

// SaveTally persists m under name and returns the new tally ID. Keys keep
// m's first-seen order; a nil m saves an empty tally.
func (b *Backend) SaveTally(name string, m *order.FrequencyMap[string]) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return "", types.ErrStoreDetached
	}
	if strings.TrimSpace(name) == "" {
		return "", types.ErrInvalidName
	}

	var entries []order.KeyCount[string]
	if m != nil {
		entries = m.Entries()
	}

	id := generateUUID()
	createdAt := time.Now().UTC()
	if err := b.insertTally(id, name, createdAt, entries); err != nil {
		return "", err
	}

	b.logger.Debug("tally saved",
		zap.String("tally_id", id),
		zap.String("name", name),
		zap.Int("keys", len(entries)))
	return id, nil
}

func (b *Backend) insertTally(id, name string, createdAt time.Time, entries []order.KeyCount[string]) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO tallies (tally_id, name, created_at) VALUES (?, ?, ?)",
		id, name, createdAt.Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("inserting tally %s: %w", id, err)
	}
	for _, e := range entries {
		if _, err := tx.Exec(upsertCount, id, e.Key, id, e.Count); err != nil {
			return fmt.Errorf("inserting count %q: %w", e.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing tally %s: %w", id, err)
	}
	return nil
}

// Increment adds delta occurrences of key to an existing tally, inserting the
// key when absent. It returns the new count. A missing tally yields
// ErrKeyAbsent; a non-positive delta yields ErrInvalidCount.
func (b *Backend) Increment(tallyID, key string, delta int) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return 0, types.ErrStoreDetached
	}
	if delta < 1 {
		return 0, fmt.Errorf("%w: delta %d", types.ErrInvalidCount, delta)
	}

	tx, err := b.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tallyExists(tx, tallyID); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(upsertCount, tallyID, key, tallyID, delta); err != nil {
		return 0, fmt.Errorf("incrementing %q: %w", key, err)
	}
	var count int
	if err := tx.QueryRow(
		"SELECT count FROM tally_counts WHERE tally_id = ? AND key = ?", tallyID, key,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("reading count %q: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing increment: %w", err)
	}
	return count, nil
}

// LoadTally returns the tally with the given ID, or ErrKeyAbsent.
func (b *Backend) LoadTally(tallyID string) (*Tally, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	t := &Tally{TallyID: tallyID}
	var createdAt string
	err := b.db.QueryRow(
		"SELECT name, created_at FROM tallies WHERE tally_id = ?", tallyID,
	).Scan(&t.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: tally %s", types.ErrKeyAbsent, tallyID)
	}
	if err != nil {
		return nil, fmt.Errorf("getting tally %s: %w", tallyID, err)
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at of %s: %w", tallyID, err)
	}

	entries, err := b.loadCounts(tallyID)
	if err != nil {
		return nil, err
	}
	if t.Counts, err = order.FromCounts(entries...); err != nil {
		return nil, fmt.Errorf("hydrating tally %s: %w", tallyID, err)
	}
	return t, nil
}

func (b *Backend) loadCounts(tallyID string) ([]order.KeyCount[string], error) {
	rows, err := b.db.Query(
		"SELECT key, count FROM tally_counts WHERE tally_id = ? ORDER BY ordinal", tallyID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying counts of %s: %w", tallyID, err)
	}
	defer rows.Close()

	var entries []order.KeyCount[string]
	for rows.Next() {
		var e order.KeyCount[string]
		if err := rows.Scan(&e.Key, &e.Count); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListTallies returns every tally in creation order.
func (b *Backend) ListTallies() ([]TallySummary, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.Query(`SELECT t.tally_id, t.name, t.created_at,
    COUNT(c.key), COALESCE(SUM(c.count), 0)
FROM tallies t LEFT JOIN tally_counts c ON c.tally_id = t.tally_id
GROUP BY t.tally_id
ORDER BY t.created_at, t.rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing tallies: %w", err)
	}
	defer rows.Close()

	var out []TallySummary
	for rows.Next() {
		var s TallySummary
		var createdAt string
		if err := rows.Scan(&s.TallyID, &s.Name, &createdAt, &s.Keys, &s.Total); err != nil {
			return nil, fmt.Errorf("scanning tally: %w", err)
		}
		if s.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at of %s: %w", s.TallyID, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteTally removes a tally and its counts, or returns ErrKeyAbsent.
func (b *Backend) DeleteTally(tallyID string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tallyExists(tx, tallyID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM tally_counts WHERE tally_id = ?", tallyID); err != nil {
		return fmt.Errorf("deleting counts of %s: %w", tallyID, err)
	}
	if _, err := tx.Exec("DELETE FROM tallies WHERE tally_id = ?", tallyID); err != nil {
		return fmt.Errorf("deleting tally %s: %w", tallyID, err)
	}
	return tx.Commit()
}

func tallyExists(tx *sql.Tx, tallyID string) error {
	var one int
	err := tx.QueryRow("SELECT 1 FROM tallies WHERE tally_id = ?", tallyID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: tally %s", types.ErrKeyAbsent, tallyID)
	}
	if err != nil {
		return fmt.Errorf("checking tally %s: %w", tallyID, err)
	}
	return nil
}
