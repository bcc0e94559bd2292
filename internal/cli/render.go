package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/structogram/pkg/pipeline"
)

// renderFlags holds the command-line flags shared by render-like commands.
type renderFlags struct {
	formats string
	output  string
	noCache bool
	opts    pipeline.Options
}

// register binds the flags to cmd.
func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, txt (comma-separated)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.opts.Refresh, "refresh", false, "ignore cached results and recompute")

	cmd.Flags().IntVar(&f.opts.Line, "line", 0, "select the method containing this 1-based line")
	cmd.Flags().StringVar(&f.opts.Style, "style", "", "visual style: simple (default), print")
	cmd.Flags().StringVarP(&f.opts.VizType, "type", "t", "", "visualization type: structogram (default), nodelink")
	cmd.Flags().BoolVar(&f.opts.NoTitle, "no-title", false, "omit the declaration title")
	cmd.Flags().Float64Var(&f.opts.Scale, "scale", 0, "PNG scale factor (default 2)")
	cmd.Flags().StringVar(&f.opts.Measurer, "measurer", "", "text measurer: font (default), mono")
	cmd.Flags().BoolVar(&f.opts.EmbedFont, "embed-font", false, "embed the label font in SVG and PDF output")
	cmd.Flags().BoolVar(&f.opts.Normalize, "normalize", false, "show normalized labels (nodelink)")
}

// renderCommand creates the render command for drawing one method.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render <class-file> [method]",
		Short: "Render a method as a structogram",
		Long: `Render a method of a class model as a Nassi-Shneiderman diagram.

The method is chosen by name ("max" or "max/2" for overloads), by --line,
or automatically when the class declares a single method. Output files are
named <class-file>.<method>.<format> unless -o is given.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.opts.Path = args[0]
			f.opts.Method = methodArg(args)
			f.opts.Formats = parseFormats(f.formats)
			return c.runRender(cmd.Context(), f)
		},
		ValidArgsFunction: completeMethodRefs,
	}
	f.register(cmd)
	return cmd
}

// runRender executes the pipeline and writes one artifact per format.
func (c *CLI) runRender(ctx context.Context, f renderFlags) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	opts := f.opts
	cfg.Apply(&opts)
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Rendering "+opts.Path+"...")
	spinner.Start()

	p := newProgress(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.Fail("Render failed")
		return err
	}
	spinner.Stop()

	base := basePath(f.output, opts.Path, result.Method, knownFormats())
	written, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   result.Formats,
		base:      base,
		output:    f.output,
	})
	if err != nil {
		return err
	}
	if len(written) == 0 {
		return nil
	}

	printSuccess("Rendered %s", result.Declaration)
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Stats.NodeCount, result.Stats.Width, result.Stats.Height, result.CacheInfo.RenderHit)
	p.done("render complete", "method", result.ClassName+"."+result.Method.Name, "formats", strings.Join(result.Formats, ","))
	return nil
}

// knownFormats lists every output extension of any visualization type.
func knownFormats() []string {
	var out []string
	for _, formats := range pipeline.ValidFormats {
		out = append(out, formats...)
	}
	return out
}
