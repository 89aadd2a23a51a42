package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionOutput renders build information.
type versionOutput BuildInfo

func (v versionOutput) String() string {
	return fmt.Sprintf("chemsolver %s (commit: %s, built: %s)\n", v.Version, v.Commit, v.BuildDate)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintResult(cmd, versionOutput{Version: Version, Commit: GitCommit, BuildDate: BuildDate})
		},
	}
}

//Personal.AI order the ending
