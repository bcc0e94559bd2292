package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/structogram/pkg/pipeline"
	"github.com/matzehuels/structogram/pkg/render/structogram/layout"
)

// layoutCommand creates the layout command for inspecting box sizes.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout <class-file> [method]",
		Short: "Print the computed box sizes of a method",
		Long: `Print the layout tree of a method: every box with its kind, label,
width and height, indented by nesting depth. Useful to see why a diagram
came out wider than expected.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			opts.Method = methodArg(args)
			return c.runLayout(cmd.Context(), opts)
		},
		ValidArgsFunction: completeMethodRefs,
	}

	cmd.Flags().IntVar(&opts.Line, "line", 0, "select the method containing this 1-based line")
	cmd.Flags().StringVar(&opts.Measurer, "measurer", "", "text measurer: font (default), mono")

	return cmd
}

// runLayout loads the class, builds the layout tree and prints it.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	cfg.Apply(&opts)
	opts.Logger = c.Logger
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	class, _, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	m, err := pipeline.Select(class, opts)
	if err != nil {
		return err
	}
	root, err := pipeline.BuildLayout(m, opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, StyleTitle.Render(m.Declaration()))
	if root == nil {
		printInfo("No structogram available")
		return nil
	}
	fmt.Fprintln(stdout, layoutTable(layoutRows(root)).Render())
	printKeyValue("Canvas", fmt.Sprintf("%d×%d", root.Width()+2*opts.Layout.Padding, root.Height()+2*opts.Layout.Padding))
	return nil
}

// layoutRows flattens the tree into table rows, indenting kinds by depth.
func layoutRows(root layout.Node) [][]string {
	var rows [][]string
	layout.Walk(root, func(n layout.Node, depth int) {
		rows = append(rows, []string{
			strings.Repeat("  ", depth) + string(n.Kind()),
			layout.Label(n),
			strconv.Itoa(n.Width()),
			strconv.Itoa(n.Height()),
		})
	})
	return rows
}

func layoutTable(rows [][]string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Label", "W", "H").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col >= 2:
				return lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)
			case col == 1:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})
}
