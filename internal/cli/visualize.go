package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/structogram/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering a saved scene.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "visualize <scene.json>",
		Short: "Render a saved scene to SVG, PNG, PDF or text",
		Long: `Render a scene document produced by 'render -f json'.

The scene holds every rectangle, line and label already positioned, so this
step only paints. The title and style recorded in the document are reused
unless overridden.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			return c.runVisualize(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, txt (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style (default: the scene's own)")
	cmd.Flags().BoolVar(&opts.NoTitle, "no-title", false, "omit the declaration title")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG scale factor (default 2)")

	return cmd
}

// runVisualize loads the scene document and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}

	cfg, err := c.config()
	if err != nil {
		return err
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatSVG}
	}
	if opts.Scale == 0 {
		opts.Scale = cfg.Render.Scale
	}
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, "Rendering scene...")
	spinner.Start()

	artifacts, err := pipeline.RenderFromSceneData(ctx, data, opts)
	if err != nil {
		spinner.Fail("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else if ext := filepath.Ext(base); len(opts.Formats) > 1 && ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	written, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		base:      base,
		output:    output,
	})
	if err != nil {
		return err
	}
	if len(written) > 0 {
		printSuccess("Visualization complete")
		for _, path := range written {
			printFile(path)
		}
	}
	return nil
}
