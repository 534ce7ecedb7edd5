package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/flowboardhq/flowboard/pkg/board"
	"github.com/flowboardhq/flowboard/pkg/compose"
	"github.com/flowboardhq/flowboard/pkg/model"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// cellWidth bounds card titles so wide boards stay readable.
const cellWidth = 24

// =============================================================================
// BoardModel - Interactive kanban board browser
// =============================================================================

// BoardModel is the bubbletea model for browsing a composed kanban board.
type BoardModel struct {
	Title    string
	Lanes    []board.Swimlane
	Lane     int
	Col      int
	Row      int
	Selected *model.Node
}

// NewBoardModel creates a board browser over composed board data.
func NewBoardModel(title string, data *compose.BoardData) BoardModel {
	return BoardModel{Title: title, Lanes: data.Swimlanes}
}

func (m BoardModel) Init() tea.Cmd {
	return nil
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Lanes) == 0 {
		return m, nil
	}

	lane := m.Lanes[m.Lane]
	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		if m.Col > 0 {
			m.Col--
			m.Row = clampRow(m.Row, lane.Columns[m.Col])
		}
	case "right", "l":
		if m.Col < len(lane.Columns)-1 {
			m.Col++
			m.Row = clampRow(m.Row, lane.Columns[m.Col])
		}
	case "up", "k":
		if m.Row > 0 {
			m.Row--
		}
	case "down", "j":
		if m.Row < len(lane.Columns[m.Col].Nodes)-1 {
			m.Row++
		}
	case "tab":
		m.Lane = (m.Lane + 1) % len(m.Lanes)
		m.Col, m.Row = 0, 0
	case "shift+tab":
		m.Lane = (m.Lane + len(m.Lanes) - 1) % len(m.Lanes)
		m.Col, m.Row = 0, 0
	case "enter":
		nodes := lane.Columns[m.Col].Nodes
		if m.Row < len(nodes) {
			m.Selected = &nodes[m.Row]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m BoardModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ column  ↑/↓ card  ⇥ swimlane  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if len(m.Lanes) == 0 {
		b.WriteString(listDimStyle.Render("  (empty board)"))
		return b.String()
	}

	lane := m.Lanes[m.Lane]
	if !lane.Implicit() {
		b.WriteString(listSelectedStyle.Render(lane.Label))
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d swimlanes]", m.Lane+1, len(m.Lanes))))
		b.WriteString("\n")
	}

	headers := make([]string, len(lane.Columns))
	depth := 0
	for i, col := range lane.Columns {
		headers[i] = fmt.Sprintf("%s (%d)", col.Label, len(col.Nodes))
		if len(col.Nodes) > depth {
			depth = len(col.Nodes)
		}
	}

	rows := make([][]string, depth)
	for r := 0; r < depth; r++ {
		row := make([]string, len(lane.Columns))
		for ci, col := range lane.Columns {
			if r < len(col.Nodes) {
				row[ci] = truncate(col.Nodes[r].Title, cellWidth)
			}
		}
		rows[r] = row
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				if col == m.Col {
					return headerStyle.Foreground(colorCyan)
				}
				return headerStyle
			}
			if col == m.Col && row == m.Row {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == m.Col {
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	if node := m.currentNode(); node != nil {
		b.WriteString(listDimStyle.Render("  " + node.ID + "  " + node.Type))
		if node.Status != "" {
			b.WriteString(listDimStyle.Render("  " + node.Status))
		}
	}

	return b.String()
}

// currentNode returns the node under the cursor, or nil for an empty cell.
func (m BoardModel) currentNode() *model.Node {
	if len(m.Lanes) == 0 {
		return nil
	}
	lane := m.Lanes[m.Lane]
	if m.Col >= len(lane.Columns) {
		return nil
	}
	nodes := lane.Columns[m.Col].Nodes
	if m.Row >= len(nodes) {
		return nil
	}
	return &nodes[m.Row]
}

// =============================================================================
// Helpers
// =============================================================================

func clampRow(row int, col board.Column) int {
	if len(col.Nodes) == 0 {
		return 0
	}
	if row >= len(col.Nodes) {
		return len(col.Nodes) - 1
	}
	return row
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
