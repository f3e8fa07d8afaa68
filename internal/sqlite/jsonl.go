package sqlite

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/polycore/pkg/order"
	"github.com/mesh-intelligence/polycore/pkg/types"
)

// tallyRecord is the JSONL form of a tally.
type tallyRecord struct {
	TallyID   string        `json:"tally_id"`
	Name      string        `json:"name"`
	CreatedAt string        `json:"created_at"`
	Counts    []countRecord `json:"counts"`
}

type countRecord struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// maxRecordLine bounds one exported tally line.
const maxRecordLine = 16 << 20

// decodeTallies reads one tallyRecord per line of path. Blank lines, lines
// that are not a JSON object, and records without an ID or name are skipped.
func decodeTallies(path string) ([]tallyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []tallyRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(nil, maxRecordLine)
	for scanner.Scan() {
		var rec tallyRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil || rec.TallyID == "" || rec.Name == "" {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeAtomic writes path through a temp file in the same directory that is
// fsynced and renamed into place. On any error the temp file is removed and
// path is left as it was.
func writeAtomic(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = write(w); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}

// ExportJSONL writes every tally, one per line, to path atomically.
func (b *Backend) ExportJSONL(path string) (int, error) {
	summaries, err := b.ListTallies()
	if err != nil {
		return 0, err
	}

	err = writeAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		for _, s := range summaries {
			t, err := b.LoadTally(s.TallyID)
			if err != nil {
				return err
			}
			rec := tallyRecord{
				TallyID:   t.TallyID,
				Name:      t.Name,
				CreatedAt: t.CreatedAt.Format(time.RFC3339),
				Counts:    make([]countRecord, 0, t.Counts.Len()),
			}
			for k, n := range t.Counts.All() {
				rec.Counts = append(rec.Counts, countRecord{Key: k, Count: n})
			}
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("encoding tally %s: %w", t.TallyID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	b.logger.Debug("tallies exported", zap.String("path", path), zap.Int("tallies", len(summaries)))
	return len(summaries), nil
}

// ImportJSONL loads tallies written by ExportJSONL. Lines that do not decode
// to a valid tally are skipped, as are tallies whose ID already exists. It
// returns the number of tallies imported.
func (b *Backend) ImportJSONL(path string) (int, error) {
	records, err := decodeTallies(path)
	if err != nil {
		return 0, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return 0, types.ErrStoreDetached
	}

	imported := 0
	for _, rec := range records {
		createdAt, err := time.Parse(time.RFC3339, rec.CreatedAt)
		if err != nil {
			continue
		}
		entries := make([]order.KeyCount[string], len(rec.Counts))
		for i, c := range rec.Counts {
			entries[i] = order.KeyCount[string]{Key: c.Key, Count: c.Count}
		}
		// FromCounts enforces positive counts before anything is written.
		m, err := order.FromCounts(entries...)
		if err != nil {
			continue
		}
		err = b.insertTally(rec.TallyID, rec.Name, createdAt, m.Entries())
		if err != nil {
			if isConstraintError(err) {
				continue
			}
			return imported, err
		}
		imported++
	}
	b.logger.Debug("tallies imported", zap.String("path", path), zap.Int("tallies", imported))
	return imported, nil
}

// isConstraintError reports whether err is a SQLite constraint violation,
// such as a duplicate primary key.
func isConstraintError(err error) bool {
	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		// SQLITE_CONSTRAINT and its extended codes share the low byte 19.
		return coded.Code()&0xff == 19
	}
	return false
}
