// Package commands implements the CLI commands for the forge build tool.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"go.trai.ch/forge/internal/app"
)

// AppFactory builds the application from the workspace file named by the
// persistent config flag. It runs once, when a command needs the app.
type AppFactory func(configPath string) (*app.App, error)

// CLI represents the command line interface for forge.
type CLI struct {
	newApp  AppFactory
	rootCmd *cobra.Command
}

// New creates a new CLI instance. Everything after a "--" on the command
// line is passed through to the external executor verbatim.
func New(newApp AppFactory) *CLI {
	rootCmd := &cobra.Command{
		Use:           "forge",
		Short:         "A ninja build-file generator",
		Long:          "forge turns Go build descriptions into ninja build files and delegates execution to ninja.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "forge.yaml", "Path to the workspace file")

	c := &CLI{
		newApp:  newApp,
		rootCmd: rootCmd,
	}

	buildCmd := c.newBuildCmd()
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	// build is the default action
	rootCmd.RunE = buildCmd.RunE
	rootCmd.Flags().AddFlagSet(buildCmd.Flags())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for
// testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) app(cmd *cobra.Command) (*app.App, error) {
	configPath, _ := cmd.Root().PersistentFlags().GetString("config")
	return c.newApp(configPath)
}
