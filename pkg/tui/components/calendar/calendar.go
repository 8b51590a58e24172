// Package calendar renders one month panel with badges and a day cursor.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/contcal/pkg/grid"
	"tableflip.dev/contcal/pkg/people"
	"tableflip.dev/contcal/pkg/printers"
	"tableflip.dev/contcal/pkg/tui/theme"
)

// Model renders a grid.Panel. It holds no navigation state of its own.
type Model struct {
	theme   theme.Theme
	metrics theme.Metrics

	panel  grid.Panel
	index  *people.Index
	cursor int
	now    func() time.Time
}

// New constructs a calendar for panel with the cursor on the first day.
func New(th theme.Theme, metrics theme.Metrics, panel grid.Panel) *Model {
	m := &Model{theme: th, metrics: metrics, now: time.Now}
	m.SetPanel(panel, 1)
	return m
}

// SetTheme swaps the palette.
func (m *Model) SetTheme(th theme.Theme) { m.theme = th }

// SetMetrics changes the cell size.
func (m *Model) SetMetrics(metrics theme.Metrics) { m.metrics = metrics }

// SetClock overrides the clock used for the today marker.
func (m *Model) SetClock(now func() time.Time) { m.now = now }

// SetIndex replaces the assignments used for badges.
func (m *Model) SetIndex(idx *people.Index) { m.index = idx }

// SetPanel shows panel with the cursor on day, clamped to the month length.
func (m *Model) SetPanel(panel grid.Panel, day int) {
	m.panel = panel
	day = max(1, min(day, grid.DaysIn(panel.Year, panel.Month)))
	m.cursor = panel.IndexOf(day)
}

// Panel returns the displayed panel.
func (m *Model) Panel() grid.Panel { return m.panel }

// Cursor returns the cell under the cursor.
func (m *Model) Cursor() grid.Cell { return m.panel.Cells[m.cursor] }

// CellAt maps a screen position, relative to the top left corner of View,
// onto a cell.
func (m *Model) CellAt(x, y int) (grid.Cell, bool) {
	frame := m.theme.Calendar.Frame
	x -= frame.GetBorderLeftSize() + frame.GetPaddingLeft()
	y -= frame.GetBorderTopSize() + frame.GetPaddingTop() + 2 // title and weekday rows
	if x < 0 || y < 0 {
		return grid.Cell{}, false
	}
	col, row := x/m.metrics.CellWidth, y/m.metrics.CellHeight
	if col > 6 || row >= grid.Weeks {
		return grid.Cell{}, false
	}
	return m.panel.Cells[row*7+col], true
}

// View renders the framed panel.
func (m *Model) View() string {
	cw := m.metrics.CellWidth
	gridWidth := cw * 7

	title := m.theme.Calendar.Title.Width(gridWidth).Align(lipgloss.Center).Render(m.panel.Title())

	header := make([]string, 0, 7)
	for _, wd := range grid.WeekdayHeader {
		header = append(header, m.theme.Calendar.Weekday.Width(cw).Align(lipgloss.Center).Render(wd))
	}

	rows := []string{title, lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	now := m.now()
	for w := 0; w < grid.Weeks; w++ {
		cells := make([]string, 0, 7)
		for i, c := range m.panel.Row(w) {
			cells = append(cells, m.renderCell(c, w*7+i == m.cursor, now))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return m.theme.Calendar.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderCell(c grid.Cell, cursor bool, now time.Time) string {
	ct := m.theme.Calendar
	cw, ch := m.metrics.CellWidth, m.metrics.CellHeight

	style := ct.Day
	if !c.InMonth() {
		style = ct.Outside
	}
	if c.IsToday(now) {
		style = style.Inherit(ct.Today)
	}
	if cursor {
		style = ct.Cursor.Inherit(style)
	}

	list := m.index.AssignmentsFor(c.ISO())
	day := fmt.Sprintf("%2d", c.Day)
	badge := printers.Badge(len(list))

	line := day
	if badge != "" {
		gap := max(0, cw-len(day)-lipgloss.Width(badge)-1)
		line += strings.Repeat(" ", gap) + ct.Badge.Inherit(style).Render(badge)
	}
	lines := []string{line}

	if ch > 1 && len(list) > 0 {
		initials := make([]string, 0, len(list))
		for _, p := range list {
			initials = append(initials, p.Initials())
		}
		lines = append(lines, truncate.StringWithTail(strings.Join(initials, " "), uint(max(cw-1, 1)), "…"))
	}
	for len(lines) < ch {
		lines = append(lines, "")
	}
	return style.Width(cw).Height(ch).MaxHeight(ch).Render(strings.Join(lines[:ch], "\n"))
}
