package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the polycore release.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/polycore"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the polycore version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.jsonMode {
				return printJSON(cmd, map[string]string{"version": Version, "module": modulePath})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "polycore v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
