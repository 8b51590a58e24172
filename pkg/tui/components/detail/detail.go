// Package detail renders the modal dialog listing the people of a date.
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/contcal/pkg/grid"
	"tableflip.dev/contcal/pkg/people"
	"tableflip.dev/contcal/pkg/selection"
	"tableflip.dev/contcal/pkg/tui/theme"
)

// Model renders a selection.Controller snapshot.
type Model struct {
	theme theme.Theme
	width int

	date   string
	people []people.Person
	active string

	notesKey string
	notes    string
}

// New constructs a dialog of the given outer width.
func New(th theme.Theme, width int) *Model {
	return &Model{theme: th, width: width}
}

// SetTheme swaps the palette.
func (m *Model) SetTheme(th theme.Theme) {
	m.theme = th
	m.notesKey = ""
}

// SetWidth changes the outer width.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// Sync copies the controller state. A closed controller clears the dialog.
func (m *Model) Sync(c *selection.Controller) {
	if !c.IsOpen() {
		m.date, m.people, m.active = "", nil, ""
		return
	}
	m.date = c.Date()
	m.people = c.People()
	m.active = c.ActiveID()
}

// Visible reports whether there is anything to show.
func (m *Model) Visible() bool { return m.date != "" }

func (m *Model) innerWidth() int {
	return max(m.width-m.theme.Dialog.Frame.GetHorizontalFrameSize(), 16)
}

// View renders the dialog, or "" when closed.
func (m *Model) View() string {
	if !m.Visible() {
		return ""
	}
	dt := m.theme.Dialog
	width := m.innerWidth()

	sections := []string{
		dt.Title.Render(Title(m.date)),
		dt.Label.Render(countLabel(len(m.people))),
		"",
	}

	var active people.Person
	for _, p := range m.people {
		avatar, marker := dt.Avatar, "  "
		if p.ID == m.active {
			avatar, marker, active = dt.ActiveAvatar, "› ", p
		}
		row := lipgloss.JoinHorizontal(lipgloss.Center,
			marker,
			avatar.Render(p.Initials()),
			" ",
			dt.Name.Render(p.Name),
			"  ",
			dt.Role.Render(p.RoleOrDash()),
		)
		sections = append(sections, row)
	}

	if active.ID != "" {
		sections = append(sections, "", dt.Label.Render(strings.Repeat("─", width)))
		for _, f := range []struct{ label, value string }{
			{"Task", active.Task},
			{"Email", active.Email},
			{"Phone", active.Phone},
		} {
			value := wordwrap.String(people.OrDash(f.value), max(width-8, 8))
			sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
				dt.Label.Width(8).Render(f.label),
				dt.Value.Render(value),
			))
		}
		if strings.TrimSpace(active.Notes) != "" {
			sections = append(sections, "", dt.Label.Render("Notes"), m.renderNotes(active.Notes, width))
		}
	}

	return dt.Frame.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderNotes formats markdown notes with glamour, falling back to plain
// wrapped text. The result is cached per notes, width and palette.
func (m *Model) renderNotes(notes string, width int) string {
	key := fmt.Sprintf("%t/%d/%s", m.theme.Dark, width, notes)
	if key == m.notesKey {
		return m.notes
	}

	style := "light"
	if m.theme.Dark {
		style = "dark"
	}
	out := ""
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		out, err = renderer.Render(notes)
	}
	if err != nil {
		out = wordwrap.String(notes, width)
	}
	out = strings.Trim(out, "\n")

	m.notesKey, m.notes = key, out
	return out
}

// Title formats an ISO date as "Tuesday, 28 October 2025"; malformed keys
// are shown verbatim.
func Title(iso string) string {
	c, ok := grid.ParseISO(iso)
	if !ok {
		return iso
	}
	return fmt.Sprintf("%s, %d %s %d", c.Date(nil).Weekday(), c.Day, grid.MonthNames[c.Month], c.Year)
}

func countLabel(n int) string {
	if n == 1 {
		return "1 person scheduled"
	}
	return fmt.Sprintf("%d people scheduled", n)
}
