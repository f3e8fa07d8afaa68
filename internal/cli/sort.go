package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/polycore/internal/samples"
	"github.com/mesh-intelligence/polycore/pkg/order"
	"github.com/mesh-intelligence/polycore/pkg/types"
)

type sortOptions struct {
	partial   bool
	byAge     bool
	largest   bool
	stability string
	nanPolicy string
}

func newSortCmd() *cobra.Command {
	var opts sortOptions
	cmd := &cobra.Command{
		Use:   "sort [values...]",
		Short: "Sort values under their natural or partial order",
		Long: "Sort integers in natural order. With --partial the values are floats\n" +
			"under a partial order where NaN is incomparable; --nan decides how NaN\n" +
			"is placed, and the default policy refuses to sort. With --by-age the\n" +
			"built-in roster of people is sorted by age.",
		Example: "  polycore sort 34 50 25 100 65\n" +
			"  polycore sort --partial --nan last 1.5 NaN 0.25\n" +
			"  polycore sort --by-age",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, args, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.partial, "partial", false, "parse values as floats and use the partial order")
	cmd.Flags().BoolVar(&opts.byAge, "by-age", false, "sort the sample roster by age")
	cmd.Flags().BoolVar(&opts.largest, "largest", false, "print only the largest value")
	cmd.Flags().StringVar(&opts.stability, "stability", "", "stable or unstable (default from config)")
	cmd.Flags().StringVar(&opts.nanPolicy, "nan", "", "NaN policy for --partial: error, last or first (default from config)")
	return cmd
}

func runSort(cmd *cobra.Command, args []string, opts sortOptions) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	defer s.close()

	st, err := stability(opts.stability, s)
	if err != nil {
		return err
	}

	switch {
	case opts.byAge:
		if len(args) > 0 {
			return errors.New("--by-age takes no values")
		}
		return sortPeople(cmd, st, opts.largest)
	case opts.partial:
		policy := opts.nanPolicy
		if policy == "" {
			policy = s.cfg.NaNPolicy
		}
		return sortFloats(cmd, s, args, st, policy, opts.largest)
	default:
		return sortInts(cmd, args, st, opts.largest)
	}
}

func sortInts(cmd *cobra.Command, args []string, st order.Stability, largest bool) error {
	values := make([]int64, len(args))
	for i, a := range args {
		n, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return fmt.Errorf("%q is not an integer (use --partial for floats)", a)
		}
		values[i] = n
	}

	if largest {
		top, err := order.Largest(values)
		if err != nil {
			return err
		}
		if flags.jsonMode {
			return printJSON(cmd, top)
		}
		fmt.Fprintln(cmd.OutOrStdout(), top)
		return nil
	}

	sorted := order.Sort(values, st)
	if flags.jsonMode {
		return printJSON(cmd, sorted)
	}
	out := make([]string, len(sorted))
	for i, v := range sorted {
		out[i] = strconv.FormatInt(v, 10)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, " "))
	return nil
}

func sortFloats(cmd *cobra.Command, s *session, args []string, st order.Stability, policy string, largest bool) error {
	values := make([]float64, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", a)
		}
		values[i] = f
	}
	fallback, err := order.NaNPolicy[float64](policy)
	if err != nil {
		return err
	}

	var result []float64
	if largest {
		top, err := order.LargestPartial(values, order.FloatOrder[float64], fallback)
		if err != nil {
			return partialError(s, err, policy)
		}
		result = []float64{top}
	} else {
		result, err = order.SortPartial(values, order.FloatOrder[float64], fallback, st)
		if err != nil {
			return partialError(s, err, policy)
		}
	}

	// JSON has no NaN, so floats are emitted as strings.
	out := make([]string, len(result))
	for i, v := range result {
		out[i] = formatFloat(v)
	}
	if flags.jsonMode {
		if largest {
			return printJSON(cmd, out[0])
		}
		return printJSON(cmd, out)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, " "))
	return nil
}

func partialError(s *session, err error, policy string) error {
	if errors.Is(err, types.ErrIncomparableValues) {
		s.logger.Debug("partial sort refused", zap.String("nan_policy", policy), zap.Error(err))
		return fmt.Errorf("%w (pass --nan last or --nan first to place NaN)", err)
	}
	return err
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

type personJSON struct {
	Name string `json:"name"`
	Age  uint32 `json:"age"`
}

func sortPeople(cmd *cobra.Command, st order.Stability, largest bool) error {
	age := func(p samples.Person) uint32 { return p.Age }
	people := order.SortByKey(samples.People(), age, st)
	if largest {
		// The oldest person is last after an ascending sort.
		people = people[len(people)-1:]
	}

	if flags.jsonMode {
		out := make([]personJSON, len(people))
		for i, p := range people {
			out[i] = personJSON{Name: p.Name, Age: p.Age}
		}
		return printJSON(cmd, out)
	}
	names := make([]string, len(people))
	for i, p := range people {
		names[i] = p.String()
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " "))
	return nil
}
