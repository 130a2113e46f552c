package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/groupgen/groupgen/pkg/model"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// GroupListModel - Interactive group selection
// =============================================================================

// GroupListModel is the bubbletea model for picking a group out of a library.
type GroupListModel struct {
	Groups   []model.Group
	Cursor   int
	Selected string
}

// NewGroupListModel creates a new group list model.
func NewGroupListModel(groups []model.Group) GroupListModel {
	return GroupListModel{Groups: groups}
}

func (m GroupListModel) Init() tea.Cmd {
	return nil
}

func (m GroupListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Groups)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Groups[m.Cursor].Name
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m GroupListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Node Group"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, g := range m.Groups {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		refs := len(g.Refs())
		detail := fmt.Sprintf("%-8s  %d nodes", g.Domain, len(g.Nodes))
		if refs > 0 {
			detail += fmt.Sprintf("  %d refs", refs)
		}

		line := fmt.Sprintf("%s%-30s  %s", cursor, g.Name, listDimStyle.Render(detail))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Groups))))

	return b.String()
}

// pickGroup runs the interactive picker over the library's groups and
// returns the chosen name. Quitting without a selection is an error.
func pickGroup(lib *model.Library) (string, error) {
	if len(lib.Groups) == 0 {
		return "", fmt.Errorf("library contains no groups")
	}
	if len(lib.Groups) == 1 {
		return lib.Groups[0].Name, nil
	}

	final, err := tea.NewProgram(NewGroupListModel(lib.Groups)).Run()
	if err != nil {
		return "", fmt.Errorf("group picker: %w", err)
	}
	m, ok := final.(GroupListModel)
	if !ok || m.Selected == "" {
		return "", fmt.Errorf("no group selected")
	}
	return m.Selected, nil
}
