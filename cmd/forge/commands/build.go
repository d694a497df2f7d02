package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [-- executor args]",
		Short: "Regenerate the build file if needed and run ninja (the default command)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, err := cmd.Flags().GetBool("force-regen")
			if err != nil {
				return err
			}
			a, err := c.app(cmd)
			if err != nil {
				return err
			}
			return a.Build(cmd.Context(), force, passthroughArgs(cmd, args))
		},
	}
	cmd.Flags().BoolP("force-regen", "f", false, "force a regeneration of the ninja build file")
	return cmd
}

// passthroughArgs returns the arguments after "--", which go to the external
// executor verbatim.
func passthroughArgs(cmd *cobra.Command, args []string) []string {
	if at := cmd.ArgsLenAtDash(); at >= 0 {
		return args[at:]
	}
	return nil
}
