package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/structogram/pkg/flow"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

type browseKeyMap struct {
	Quit  key.Binding
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
}

var browseKeys = browseKeyMap{
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "show")),
	Back:  key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
}

// renderFunc draws one method as terminal text.
type renderFunc func(m flow.Method) (string, error)

// =============================================================================
// BrowseModel - Interactive method selection and preview
// =============================================================================

// BrowseModel is the bubbletea model for browsing the methods of a class.
// The list view picks a method; the diagram view scrolls its text render.
type BrowseModel struct {
	Class   string
	Methods []flow.Method
	Cursor  int
	Offset  int
	Height  int

	render   renderFunc
	viewing  bool
	viewport viewport.Model
	err      error
	width    int
}

// NewBrowseModel creates a browse model over the methods of class.
func NewBrowseModel(class *flow.Class, render renderFunc) BrowseModel {
	return BrowseModel{
		Class:    class.Name,
		Methods:  class.Methods,
		Height:   15,
		render:   render,
		viewport: viewport.New(80, 20),
		width:    80,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.Height = max(msg.Height-6, 5)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 5)
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, browseKeys.Quit) {
			return m, tea.Quit
		}
		if m.viewing {
			if key.Matches(msg, browseKeys.Back) {
				m.viewing = false
				return m, nil
			}
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		switch {
		case key.Matches(msg, browseKeys.Up):
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case key.Matches(msg, browseKeys.Down):
			if m.Cursor < len(m.Methods)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case key.Matches(msg, browseKeys.Enter):
			if len(m.Methods) == 0 {
				return m, nil
			}
			text, err := m.render(m.Methods[m.Cursor])
			m.err = err
			if err != nil {
				return m, nil
			}
			m.viewport.SetContent(text)
			m.viewport.GotoTop()
			m.viewing = true
		}
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	if m.viewing {
		b.WriteString(StyleTitle.Render(m.Methods[m.Cursor].Declaration()))
		b.WriteString("\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("↑/↓ scroll  esc back  q quit  %3.f%%", m.viewport.ScrollPercent()*100)))
		return b.String()
	}

	b.WriteString(StyleTitle.Render(m.Class))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ show  q quit"))
	b.WriteString("\n\n")

	if len(m.Methods) == 0 {
		b.WriteString(listDimStyle.Render("  No methods declared"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Methods))
	for i := m.Offset; i < end; i++ {
		mt := m.Methods[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := cursor + mt.Declaration()
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case !mt.HasBody():
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Methods))))
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render("  " + m.err.Error()))
	}
	return b.String()
}
