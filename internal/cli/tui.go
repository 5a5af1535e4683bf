package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// StyleListModel is the bubbletea model for browsing resolved styles. The
// list is on the left, the highlighted style's attributes below it.
type StyleListModel struct {
	Rows   []styleRow
	Cursor int
	Height int
	Offset int
}

// NewStyleListModel creates a style browser over rows.
func NewStyleListModel(rows []styleRow) StyleListModel {
	return StyleListModel{Rows: rows, Height: 15}
}

func (m StyleListModel) Init() tea.Cmd {
	return nil
}

func (m StyleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
	}
	return m, nil
}

func (m StyleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Styles"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	for i := m.Offset; i < end; i++ {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + m.Rows[i].Name))
		} else {
			b.WriteString(listNormalStyle.Render("  " + m.Rows[i].Name))
		}
		b.WriteString("\n")
	}

	if len(m.Rows) > 0 {
		b.WriteString("\n")
		b.WriteString(renderStyles(m.Rows[m.Cursor : m.Cursor+1]))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	}

	return b.String()
}
