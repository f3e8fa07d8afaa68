package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/polycore/pkg/order"
)

type tallyOptions struct {
	save    string
	ranked  bool
	workers int
}

func newTallyCmd() *cobra.Command {
	var opts tallyOptions
	cmd := &cobra.Command{
		Use:   "tally [words...]",
		Short: "Count occurrences of each word",
		Long: "Count how often each word occurs, in first-seen order. Words come from\n" +
			"the arguments, or from standard input split on whitespace when no\n" +
			"arguments are given. --save stores the counts as a named tally.",
		Example: "  polycore tally hello world wonderful world\n" +
			"  cat notes.txt | polycore tally --ranked --workers 4",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTally(cmd, args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.save, "save", "", "save the counts as a tally with this name")
	cmd.Flags().BoolVar(&opts.ranked, "ranked", false, "order by descending count")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "count in parallel with this many workers")
	return cmd
}

func runTally(cmd *cobra.Command, args []string, opts tallyOptions) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	defer s.close()

	words := args
	if len(words) == 0 {
		if words, err = readWords(cmd); err != nil {
			return systemError("read input: %w", err)
		}
	}

	var counts *order.FrequencyMap[string]
	if opts.workers > 0 {
		counts, err = order.AggregateParallel(cmd.Context(), chunk(words, opts.workers), opts.workers)
		if err != nil {
			return err
		}
	} else {
		counts = order.Aggregate(words)
	}
	s.logger.Debug("words counted",
		zap.Int("words", len(words)),
		zap.Int("keys", counts.Len()),
		zap.Int("workers", opts.workers))

	if opts.save != "" {
		store, err := openStore(s)
		if err != nil {
			return err
		}
		defer store.Detach()
		id, err := store.SaveTally(opts.save, counts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "saved tally %s as %s\n", opts.save, id)
	}

	entries := counts.Entries()
	if opts.ranked {
		entries = counts.Ranked()
	}
	return printCounts(cmd, entries)
}

func readWords(cmd *cobra.Command) ([]string, error) {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Split(bufio.ScanWords)
	var words []string
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	return words, scanner.Err()
}

// chunk splits s into at most n contiguous parts of near-equal size.
func chunk[T any](s []T, n int) [][]T {
	if n < 1 || len(s) == 0 {
		return [][]T{s}
	}
	size := (len(s) + n - 1) / n
	parts := make([][]T, 0, n)
	for len(s) > 0 {
		end := min(size, len(s))
		parts = append(parts, s[:end])
		s = s[end:]
	}
	return parts
}
