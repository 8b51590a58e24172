// Package eventlog renders a newest-first log of the messages flowing through
// a Bubble Tea program. The testbed shows it under the component being
// exercised.
package eventlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/contcal/pkg/tui/events"
	"tableflip.dev/contcal/pkg/tui/theme"
)

// Level indicates the severity of a logged event.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// Entry captures a rendered event.
type Entry struct {
	Timestamp time.Time
	Source    string
	Summary   string
	Detail    string
	Level     Level
}

// Styles controls the log's presentation.
type Styles struct {
	Frame     lipgloss.Style
	Header    lipgloss.Style
	Info      lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
	Timestamp lipgloss.Style
	Source    lipgloss.Style
}

// StylesFor derives log styles from the calendar theme.
func StylesFor(th theme.Theme) Styles {
	p := th.Palette
	return Styles{
		Frame:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(p.Muted(0.7)),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(p.Muted(0.3)),
		Info:      lipgloss.NewStyle().Foreground(p.Foreground),
		Warn:      lipgloss.NewStyle().Foreground(p.Accent),
		Error:     lipgloss.NewStyle().Foreground(p.Error),
		Timestamp: lipgloss.NewStyle().Foreground(p.Muted(0.5)),
		Source:    lipgloss.NewStyle().Foreground(p.Muted(0.4)),
	}
}

// Model renders a streaming event log.
type Model struct {
	viewport viewport.Model
	entries  []Entry

	maxEntries int
	now        func() time.Time

	width  int
	height int

	styles Styles
}

// New constructs an event log capped at maxEntries.
func New(th theme.Theme, maxEntries int) *Model {
	if maxEntries <= 0 {
		maxEntries = 200
	}
	return &Model{
		viewport:   viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		maxEntries: maxEntries,
		now:        time.Now,
		styles:     StylesFor(th),
	}
}

// SetClock replaces the timestamp source.
func (m *Model) SetClock(now func() time.Time) { m.now = now }

// SetTheme restyles the log.
func (m *Model) SetTheme(th theme.Theme) {
	m.styles = StylesFor(th)
	m.refreshContent()
}

// SetSize resizes the viewport while keeping the header and border intact.
func (m *Model) SetSize(width, height int) {
	width, height = max(width, 4), max(height, 3)
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height

	m.viewport.SetWidth(max(1, width-2))
	m.viewport.SetHeight(max(1, height-3))
	m.refreshContent()
}

// View renders the bordered viewport.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.styles.Header.Render("Events")
	body := lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View())
	return m.styles.Frame.Width(m.width).Height(m.height).Render(body)
}

// Entries returns the log, newest first.
func (m *Model) Entries() []Entry { return m.entries }

// Append inserts a new entry at the top of the log.
func (m *Model) Append(entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = m.now()
	}
	if entry.Source == "" {
		entry.Source = "tea"
	}
	if entry.Summary == "" {
		entry.Summary = "event"
	}
	m.entries = append([]Entry{entry}, m.entries...)
	if len(m.entries) > m.maxEntries {
		m.entries = m.entries[:m.maxEntries]
	}
	m.refreshContent()
	m.viewport.SetYOffset(0)
}

// Record appends msg when it has something worth showing. Snack timer
// ticks and messages without a description are skipped.
func (m *Model) Record(msg tea.Msg) {
	detail := Describe(msg)
	if detail == "" {
		return
	}
	entry := Entry{Source: Source(msg), Summary: fmt.Sprintf("%T", msg), Detail: detail}
	if v, ok := msg.(events.AssignmentsChangedMsg); ok && v.Err != nil {
		entry.Level = LevelError
	}
	if v, ok := msg.(events.ThemeChangedMsg); ok && v.Err != nil {
		entry.Level = LevelWarn
	}
	m.Append(entry)
}

// Clear drops all logged entries.
func (m *Model) Clear() {
	m.entries = nil
	m.refreshContent()
}

func (m *Model) refreshContent() {
	lines := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		lines = append(lines, m.renderEntry(entry))
	}
	content := strings.Join(lines, "\n")
	if content == "" {
		content = m.styles.Timestamp.Render("No events yet")
	}
	m.viewport.SetContent(content)
}

func (m *Model) renderEntry(entry Entry) string {
	ts := m.styles.Timestamp.Render(entry.Timestamp.Format("15:04:05.000"))
	source := m.styles.Source.Render(fmt.Sprintf("[%s]", entry.Source))
	msg := entry.Summary
	if entry.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, entry.Detail)
	}
	switch entry.Level {
	case LevelWarn:
		msg = m.styles.Warn.Render(msg)
	case LevelError:
		msg = m.styles.Error.Render(msg)
	default:
		msg = m.styles.Info.Render(msg)
	}
	return fmt.Sprintf("%s %s %s", ts, source, msg)
}

// Describe renders msg for the log, or "" when it is not interesting.
func Describe(msg tea.Msg) string {
	if _, ok := msg.(events.SnackTimerMsg); ok {
		return ""
	}
	if d, ok := msg.(interface{ Describe() string }); ok {
		return d.Describe()
	}
	switch v := msg.(type) {
	case tea.KeyPressMsg:
		return fmt.Sprintf("key=%q", v.String())
	case tea.WindowSizeMsg:
		return fmt.Sprintf("size=%dx%d", v.Width, v.Height)
	case tea.MouseClickMsg:
		return fmt.Sprintf("click=%d,%d", v.X, v.Y)
	default:
		return ""
	}
}

// Source names the part of the UI a message belongs to.
func Source(msg tea.Msg) string {
	switch msg.(type) {
	case events.DateActivatedMsg:
		return "calendar"
	case events.SnackChangedMsg:
		return "snacks"
	case events.AssignmentsChangedMsg:
		return "store"
	case events.ThemeChangedMsg:
		return "theme"
	default:
		return "tea"
	}
}
