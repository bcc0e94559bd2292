package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/structogram/pkg/flow"
	"github.com/matzehuels/structogram/pkg/pipeline"
)

// browseCommand creates the browse command, an interactive method viewer.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <class-file>",
		Short: "Browse the structograms of a class in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runBrowse(ctx context.Context, path string) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	class, classHash, err := runner.Load(ctx, pipeline.Options{Path: path, Logger: c.Logger})
	if err != nil {
		return err
	}

	render := func(m flow.Method) (string, error) {
		opts := pipeline.Options{
			Class:    class,
			Formats:  []string{pipeline.FormatText},
			Measurer: pipeline.MeasurerMono,
			NoTitle:  true,
			Logger:   c.Logger,
		}
		cfg.Apply(&opts)
		if err := opts.ValidateForLayout(); err != nil {
			return "", err
		}
		if err := opts.ValidateForRender(); err != nil {
			return "", err
		}
		sc, err := runner.GenerateScene(ctx, classHash, m, opts)
		if err != nil {
			return "", err
		}
		out, err := pipeline.Render(ctx, sc, "", opts)
		if err != nil {
			return "", err
		}
		return string(out[pipeline.FormatText]), nil
	}

	p := tea.NewProgram(NewBrowseModel(class, render), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
