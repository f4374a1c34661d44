package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/intergeo/pkg/dag"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	detailKeyStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(16)
	detailPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// =============================================================================
// ElementListModel - Interactive element browser
// =============================================================================

// ElementListModel is the bubbletea model for browsing the elements of a
// construction graph.
type ElementListModel struct {
	Graph      *dag.DAG
	Nodes      []dag.Node
	Cursor     int
	Height     int
	Offset     int
	ShowHidden bool
}

// NewElementListModel creates a browser over g. Hidden helpers are listed
// only when showHidden is set.
func NewElementListModel(g *dag.DAG, showHidden bool) ElementListModel {
	m := ElementListModel{Graph: g, Height: 15, ShowHidden: showHidden}
	m.filter()
	return m
}

func (m *ElementListModel) filter() {
	m.Nodes = nil
	for _, n := range m.Graph.Nodes() {
		if m.ShowHidden || !n.IsAuxiliary() {
			m.Nodes = append(m.Nodes, *n)
		}
	}
	m.Cursor = min(m.Cursor, max(len(m.Nodes)-1, 0))
	m.Offset = min(m.Offset, m.Cursor)
}

// Selected returns the node under the cursor.
func (m ElementListModel) Selected() (dag.Node, bool) {
	if len(m.Nodes) == 0 {
		return dag.Node{}, false
	}
	return m.Nodes[m.Cursor], true
}

func (m ElementListModel) Init() tea.Cmd {
	return nil
}

func (m ElementListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "h":
			m.ShowHidden = !m.ShowHidden
			m.filter()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-16, 5)
	}
	return m, nil
}

func (m ElementListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Construction Elements"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  h toggle hidden  q quit"))
	b.WriteString("\n\n")

	b.WriteString(elementTable(m.Nodes, m.Offset, m.Height, m.Cursor).Render())
	b.WriteString("\n")

	if n, ok := m.Selected(); ok {
		b.WriteString(detailPaneStyle.Render(m.detail(n)))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Nodes)), len(m.Nodes))))

	return b.String()
}

// detail describes one node: its metadata and its neighbours in the graph.
func (m ElementListModel) detail(n dag.Node) string {
	var lines []string
	keys := make([]string, 0, len(n.Meta))
	for k := range n.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, detailKeyStyle.Render(k)+StyleValue.Render(fmtMeta(n.Meta[k])))
	}
	lines = append(lines,
		detailKeyStyle.Render("depends on")+StyleValue.Render(joinOrDash(m.Graph.Parents(n.ID))),
		detailKeyStyle.Render("used by")+StyleValue.Render(joinOrDash(m.Graph.Children(n.ID))),
	)
	return strings.Join(lines, "\n")
}

// elementTable renders rows [offset, offset+height) of nodes. cursor is -1
// for a non-interactive listing.
func elementTable(nodes []dag.Node, offset, height, cursor int) *table.Table {
	end := min(offset+height, len(nodes))
	rows := [][]string{}
	for i := offset; i < end; i++ {
		n := nodes[i]
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		rows = append(rows, []string{marker, n.ID, n.Meta.String(dag.MetaKind), strconv.Itoa(n.Row), geometry(n.Meta)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Kind", "Depth", "Geometry").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := offset + row
			if idx >= len(nodes) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == cursor:
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			case nodes[idx].IsAuxiliary():
				return lipgloss.NewStyle().Foreground(colorDim)
			case col == 4:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
}

// geometry summarizes the coordinates stored on a node.
func geometry(m dag.Metadata) string {
	if v, ok := m.Floats(dag.MetaX, dag.MetaY); ok {
		return fmt.Sprintf("(%s, %s)", fmtFloat(v[0]), fmtFloat(v[1]))
	}
	if v, ok := m.Floats(dag.MetaCX, dag.MetaCY, dag.MetaRadius); ok {
		return fmt.Sprintf("center (%s, %s) r %s", fmtFloat(v[0]), fmtFloat(v[1]), fmtFloat(v[2]))
	}
	if v, ok := m.Floats(dag.MetaC, dag.MetaA, dag.MetaB); ok {
		return fmt.Sprintf("[%s, %s, %s]", fmtFloat(v[0]), fmtFloat(v[1]), fmtFloat(v[2]))
	}
	return "—"
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func fmtMeta(v any) string {
	if f, ok := v.(float64); ok {
		return fmtFloat(f)
	}
	return fmt.Sprint(v)
}

func joinOrDash(ids []string) string {
	if len(ids) == 0 {
		return "—"
	}
	return strings.Join(ids, ", ")
}
