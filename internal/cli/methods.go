package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/structogram/pkg/flow"
	"github.com/matzehuels/structogram/pkg/pipeline"
)

// methodsCommand creates the methods command listing a class's methods.
func (c *CLI) methodsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "methods <class-file>",
		Short: "List the methods of a class model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMethods(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runMethods(ctx context.Context, path string) error {
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	class, _, err := runner.Load(ctx, pipeline.Options{Path: path, Logger: c.Logger})
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, StyleTitle.Render(class.Name))
	if len(class.Methods) == 0 {
		printInfo("No methods declared")
		return nil
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Ref", "Declaration", "Lines", "Nodes").
		Rows(methodRows(class.Methods)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case !class.Methods[row].HasBody():
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	fmt.Fprintln(stdout, t.Render())
	printNextStep("Render", appName+" render "+path+" <ref>")
	return nil
}

// methodRef returns the reference that selects m; overloads need the arity.
func methodRef(methods []flow.Method, m flow.Method) string {
	n := 0
	for _, other := range methods {
		if other.Name == m.Name {
			n++
		}
	}
	if n > 1 {
		return m.Name + "/" + strconv.Itoa(m.Arity())
	}
	return m.Name
}

func methodRows(methods []flow.Method) [][]string {
	rows := make([][]string, 0, len(methods))
	for _, m := range methods {
		lines := "-"
		if m.StartLine > 0 {
			lines = fmt.Sprintf("%d-%d", m.StartLine, m.EndLine)
		}
		nodes := "-"
		if m.HasBody() {
			nodes = strconv.Itoa(flow.Count(m.Body))
		}
		rows = append(rows, []string{methodRef(methods, m), m.Declaration(), lines, nodes})
	}
	return rows
}
