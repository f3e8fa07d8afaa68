package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/polycore/internal/samples"
	"github.com/mesh-intelligence/polycore/pkg/capability"
	"github.com/mesh-intelligence/polycore/pkg/dispatch"
)

type describeOptions struct {
	closed bool
	news   bool
}

func newDescribeCmd() *cobra.Command {
	var opts describeOptions
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Describe the built-in capability objects",
		Long: "Describe a heterogeneous collection of values (a post, two addresses and\n" +
			"a file) through one Describer capability, in insertion order. --closed\n" +
			"describes the addresses through the closed two-case form instead, and\n" +
			"--news prints the statically dispatched notifications.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.closed, "closed", false, "describe addresses as a closed variant")
	cmd.Flags().BoolVar(&opts.news, "news", false, "print notifications for the sample post and tweet")
	return cmd
}

type describedJSON struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

func runDescribe(cmd *cobra.Command, opts describeOptions) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	defer s.close()

	var lines []string
	switch {
	case opts.news:
		lines = notifications()
	case opts.closed:
		addrs := []samples.IPAddr{
			dispatch.First[samples.IPv4, samples.IPv6]("127.0.0.1"),
			dispatch.Second[samples.IPv4, samples.IPv6]("::1"),
		}
		for _, a := range addrs {
			lines = append(lines, samples.DescribeIPAddr(a))
		}
	default:
		objects := dispatch.NewCollection[capability.Describer]()
		for _, d := range samples.Describers() {
			if _, err := objects.Append(d); err != nil {
				return err
			}
		}
		s.logger.Debug("collection built", zap.Int("objects", objects.Len()))

		if flags.jsonMode {
			var out []describedJSON
			for id, d := range objects.All() {
				out = append(out, describedJSON{ID: id, Description: d.Describe()})
			}
			return printJSON(cmd, out)
		}
		lines = dispatch.Invoke[capability.Describer](objects, capability.Describer.Describe)
	}

	if flags.jsonMode {
		return printJSON(cmd, lines)
	}
	for _, l := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), l)
	}
	return nil
}

// notifications exercises each static dispatch entry point on the samples.
func notifications() []string {
	post := samples.Post{
		Title:   "Penguins win the Stanley Cup Championship!",
		Author:  "Iceburgh",
		Content: "The Pittsburgh Penguins once again are the best hockey team in the NHL.",
	}
	tweet := samples.Tweet{Username: "horse_ebooks", Text: "of course, as you probably already know, people"}

	return []string{
		dispatch.Notify(post),
		dispatch.NotifyWith(tweet),
		dispatch.NotifyBoth(post),
		dispatch.Pairwise(samples.NewFile("f6.txt"), tweet),
		post.SummarizeAuthor(),
		tweet.SummarizeAuthor(),
	}
}
