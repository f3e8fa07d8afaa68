package sqlite

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/polycore/pkg/order"
)

func TestDecodeTallies(t *testing.T) {
	long := strings.Repeat("k", 100_000)
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "valid records in file order",
			lines: []string{`{"tally_id":"t1","name":"a"}`, `{"tally_id":"t2","name":"b"}`},
			want:  []string{"t1", "t2"},
		},
		{
			name:  "malformed lines are skipped",
			lines: []string{`{"tally_id":"t1","name":"a"}`, ``, `not json`, `[1,2]`, `{"tally_id":"t2","name":"b"}`},
			want:  []string{"t1", "t2"},
		},
		{
			name:  "records without id or name are skipped",
			lines: []string{`{"name":"no id"}`, `{"tally_id":"t9"}`, `{"tally_id":"t1","name":"a"}`},
			want:  []string{"t1"},
		},
		{
			name:  "lines longer than the default scanner buffer",
			lines: []string{`{"tally_id":"big","name":"n","counts":[{"key":"` + long + `","count":1}]}`},
			want:  []string{"big"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tallies.jsonl")
			require.NoError(t, os.WriteFile(path, []byte(strings.Join(tt.lines, "\n")+"\n"), 0o644))

			got, err := decodeTallies(path)
			require.NoError(t, err)
			ids := make([]string, len(got))
			for i, rec := range got {
				ids[i] = rec.TallyID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestDecodeTalliesMissingFile(t *testing.T) {
	_, err := decodeTallies(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteAtomic(t *testing.T) {
	boom := errors.New("encode failed")
	tests := []struct {
		name    string
		write   func(io.Writer) error
		want    string
		wantErr error
	}{
		{
			name: "replaces the file",
			write: func(w io.Writer) error {
				_, err := io.WriteString(w, "new\n")
				return err
			},
			want: "new\n",
		},
		{
			name: "failed write keeps the old file",
			write: func(w io.Writer) error {
				_, _ = io.WriteString(w, "partial")
				return boom
			},
			want:    "old\n",
			wantErr: boom,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "tallies.jsonl")
			require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

			err := writeAtomic(path, tt.write)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temp file is left behind")
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src, _ := attachTemp(t)
	id, err := src.SaveTally("words", order.Aggregate(strings.Fields("b a b c")))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tallies.jsonl")
	n, err := src.ExportJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	dst, _ := attachTemp(t)
	n, err = dst.ImportJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := dst.LoadTally(id)
	require.NoError(t, err)
	assert.Equal(t, "words", got.Name)
	assert.Equal(t, []string{"b", "a", "c"}, got.Counts.Keys())
	assert.Equal(t, 2, got.Counts.Count("b"))

	// Importing again skips the existing tally.
	n, err = dst.ImportJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestImportSkipsInvalidRecords(t *testing.T) {
	b, _ := attachTemp(t)
	path := filepath.Join(t.TempDir(), "tallies.jsonl")
	lines := []string{
		`{"tally_id":"t1","name":"ok","created_at":"2026-01-02T03:04:05Z","counts":[{"key":"a","count":2}]}`,
		`{"tally_id":"t2","name":"bad count","created_at":"2026-01-02T03:04:05Z","counts":[{"key":"a","count":0}]}`,
		`{"tally_id":"t3","name":"bad time","created_at":"yesterday","counts":[]}`,
		`{"name":"no id","created_at":"2026-01-02T03:04:05Z"}`,
		`[1,2,3]`,
	}
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	n, err := b.ImportJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := b.LoadTally("t1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Counts.Count("a"))
}
