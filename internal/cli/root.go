package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/xmlmerge/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The CLI logger is attached to the command context before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "xmlmerge applies ordered edit scripts to XML files",
		Long:         `xmlmerge rewrites XML configuration files by running an ordered list of edits (append, remove, set attributes, rename, text replacement) and writes the result back atomically with deterministic formatting.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.applyCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
