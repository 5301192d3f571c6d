package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/hanoitower/pkg/buildinfo"
)

// annotationSkipConfig marks commands that must run without a readable
// settings file.
const annotationSkipConfig = "skip-config"

// RootCommand creates the root cobra command with all subcommands registered.
// The settings file is loaded before any subcommand runs, and the logger is
// attached to the command context.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Hanoitower solves and animates the Towers of Hanoi",
		Long:         `Hanoitower solves the Towers of Hanoi puzzle and animates the solution: as SVG, as a JSON timeline, live in the terminal, or streamed over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if cmd.Annotations[annotationSkipConfig] != "" {
				return nil
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/hanoitower/config.toml)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}
