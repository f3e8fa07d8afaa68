package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/polycore/internal/sqlite"
	"github.com/mesh-intelligence/polycore/pkg/order"
)

// printJSON writes v to the command's output as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// openStore attaches the tally store described by the session. The caller
// must Detach it.
func openStore(s *session) (*sqlite.Backend, error) {
	store := sqlite.NewBackend(s.logger)
	if err := store.Attach(s.cfg); err != nil {
		return nil, systemError("attach store: %w", err)
	}
	return store, nil
}

// stability resolves the --stability flag against the configured default.
func stability(flag string, s *session) (order.Stability, error) {
	if flag == "" {
		flag = s.cfg.Stability
	}
	return order.ParseStability(flag)
}

// countJSON is the JSON shape of one frequency map entry.
type countJSON struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// printCounts writes entries as "key: count" lines, or as JSON.
func printCounts(cmd *cobra.Command, entries []order.KeyCount[string]) error {
	if flags.jsonMode {
		out := make([]countJSON, len(entries))
		for i, e := range entries {
			out[i] = countJSON{Key: e.Key, Count: e.Count}
		}
		return printJSON(cmd, out)
	}
	w := cmd.OutOrStdout()
	for _, e := range entries {
		fmt.Fprintf(w, "%s: %d\n", e.Key, e.Count)
	}
	return nil
}
