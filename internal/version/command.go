package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AttachCobraVersionCommand attaches a `version` subcommand to the provided root command.
func AttachCobraVersionCommand(root *cobra.Command) {
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Long:  "Print the game version together with the commit hash and build timestamp injected at build time.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := Validate(Version); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), Full())

			return err
		},
	})
}
