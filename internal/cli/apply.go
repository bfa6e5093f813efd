package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/xmlmerge/pkg/pipeline"
)

// applyOpts holds the command-line flags for the apply command.
type applyOpts struct {
	script  string // edit script path
	output  string // output path; empty prints to stdout
	inPlace bool   // overwrite the input file
	noCache bool   // bypass the result cache entirely
	refresh bool   // recompute and overwrite the cached result
}

// applyCommand creates the apply command, which runs an edit script against
// one document.
func (c *CLI) applyCommand() *cobra.Command {
	var opts applyOpts

	cmd := &cobra.Command{
		Use:   "apply <input>",
		Short: "Apply an edit script to an XML document",
		Example: `  xmlmerge apply workspace.xml --script edit.toml -o workspace.new.xml
  xmlmerge apply workspace.xml --script edit.toml --in-place`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.inPlace && opts.output != "" {
				return fmt.Errorf("--in-place and --output are mutually exclusive")
			}
			if opts.inPlace {
				opts.output = args[0]
			}
			return c.runApply(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "edit script (TOML)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVarP(&opts.inPlace, "in-place", "i", false, "overwrite the input file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	_ = cmd.MarkFlagRequired("script")

	return cmd
}

func (c *CLI) runApply(cmd *cobra.Command, input string, opts applyOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, pipeline.Options{
		InputPath:  input,
		ScriptPath: opts.script,
		OutputPath: opts.output,
		Refresh:    opts.refresh,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	prog.done("applied edit script",
		"actions", res.Stats.Actions,
		"cached", res.CacheInfo.TransformHit)

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(res.Document)
		return err
	}

	printSuccess("Merged %s", input)
	printStats(res.Stats.Actions, res.Stats.OutputSize, res.CacheInfo.TransformHit)
	printFile(opts.output)
	return nil
}
