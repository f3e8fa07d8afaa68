package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/polycore/internal/sqlite"
	"github.com/mesh-intelligence/polycore/pkg/order"
)

func newTalliesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tallies",
		Short: "List and manage saved tallies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *sqlite.Backend) error {
				return listTallies(cmd, store)
			})
		},
	}
	cmd.AddCommand(newTalliesShowCmd())
	cmd.AddCommand(newTalliesAddCmd())
	cmd.AddCommand(newTalliesDeleteCmd())
	cmd.AddCommand(newTalliesExportCmd())
	cmd.AddCommand(newTalliesImportCmd())
	return cmd
}

// withStore loads the session, attaches the store for fn and detaches it.
func withStore(fn func(store *sqlite.Backend) error) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	defer s.close()

	store, err := openStore(s)
	if err != nil {
		return err
	}
	defer store.Detach()
	return fn(store)
}

type tallySummaryJSON struct {
	TallyID   string `json:"tally_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	Keys      int    `json:"keys"`
	Total     int    `json:"total"`
}

func listTallies(cmd *cobra.Command, store *sqlite.Backend) error {
	list, err := store.ListTallies()
	if err != nil {
		return err
	}

	if flags.jsonMode {
		out := make([]tallySummaryJSON, len(list))
		for i, t := range list {
			out[i] = tallySummaryJSON{
				TallyID:   t.TallyID,
				Name:      t.Name,
				CreatedAt: t.CreatedAt.Format(time.RFC3339),
				Keys:      t.Keys,
				Total:     t.Total,
			}
		}
		return printJSON(cmd, out)
	}
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no tallies")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKEYS\tTOTAL\tCREATED")
	for _, t := range list {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", t.TallyID, t.Name, t.Keys, t.Total, t.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

func newTalliesShowCmd() *cobra.Command {
	var ranked bool
	cmd := &cobra.Command{
		Use:   "show <tally-id>",
		Short: "Print the counts of a tally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *sqlite.Backend) error {
				t, err := store.LoadTally(args[0])
				if err != nil {
					return err
				}
				entries := t.Counts.Entries()
				if ranked {
					entries = t.Counts.Ranked()
				}
				return printCounts(cmd, entries)
			})
		},
	}
	cmd.Flags().BoolVar(&ranked, "ranked", false, "order by descending count")
	return cmd
}

func newTalliesAddCmd() *cobra.Command {
	var by int
	cmd := &cobra.Command{
		Use:   "add <tally-id> <key>",
		Short: "Add occurrences of a key to a tally",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *sqlite.Backend) error {
				n, err := store.Increment(args[0], args[1], by)
				if err != nil {
					return err
				}
				return printCounts(cmd, []order.KeyCount[string]{{Key: args[1], Count: n}})
			})
		},
	}
	cmd.Flags().IntVar(&by, "by", 1, "number of occurrences to add")
	return cmd
}

func newTalliesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <tally-id>",
		Short: "Delete a tally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *sqlite.Backend) error {
				if err := store.DeleteTally(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func newTalliesExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.jsonl>",
		Short: "Write every tally to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *sqlite.Backend) error {
				n, err := store.ExportJSONL(args[0])
				if err != nil {
					return systemError("export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d tallies to %s\n", n, args[0])
				return nil
			})
		},
	}
}

func newTalliesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.jsonl>",
		Short: "Load tallies from a JSONL file, skipping existing IDs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *sqlite.Backend) error {
				n, err := store.ImportJSONL(args[0])
				if err != nil {
					return systemError("import: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d tallies from %s\n", n, args[0])
				return nil
			})
		},
	}
}
