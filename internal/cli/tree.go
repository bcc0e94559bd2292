package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/structogram/pkg/pipeline"
)

// treeCommand creates the tree command for the node-link view of a method.
func (c *CLI) treeCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "tree <class-file> [method]",
		Short: "Draw the control tree of a method as a node-link graph",
		Long: `Draw the control tree of a method with Graphviz.

Without -f the DOT source is printed to stdout. With -f svg, png or pdf the
graph is laid out and written next to the class file.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.opts.Path = args[0]
			f.opts.Method = methodArg(args)
			f.opts.VizType = pipeline.VizNodelink
			f.opts.Formats = parseFormats(f.formats)
			if len(f.opts.Formats) == 0 {
				f.opts.Formats = []string{pipeline.FormatDOT}
				if f.output == "" {
					f.output = "-"
				}
			}
			return c.runTree(cmd.Context(), f)
		},
		ValidArgsFunction: completeMethodRefs,
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): dot (default), svg, png, pdf (comma-separated)")
	cmd.Flags().IntVar(&f.opts.Line, "line", 0, "select the method containing this 1-based line")
	cmd.Flags().BoolVar(&f.opts.Normalize, "normalize", false, "show normalized labels")
	cmd.Flags().Float64Var(&f.opts.Scale, "scale", 0, "PNG scale factor (default 2)")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, f renderFlags) error {
	opts := f.opts
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	base := basePath(f.output, opts.Path, result.Method, knownFormats())
	if f.output == "" {
		base += ".tree"
	}
	written, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   result.Formats,
		base:      base,
		output:    f.output,
	})
	if err != nil {
		return err
	}
	if len(written) > 0 {
		printSuccess("Drew control tree of %s", result.Declaration)
		for _, path := range written {
			printFile(path)
		}
	}
	return nil
}
