// Package events defines the messages exchanged between the calendar
// components and the root model.
package events

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/contcal/pkg/people"
	"tableflip.dev/contcal/pkg/snack"
)

// DateActivatedMsg is emitted when the user activates a calendar cell. Month
// and Year are already normalized (0-11).
type DateActivatedMsg struct {
	Day    int
	Month  int
	Year   int
	Date   string
	People []people.Person
}

// Describe renders the activation for logs.
func (m DateActivatedMsg) Describe() string {
	return fmt.Sprintf(`date:%q people:%d`, m.Date, len(m.People))
}

// DateActivatedCmd wraps DateActivatedMsg into a tea.Cmd.
func DateActivatedCmd(day, month, year int, iso string, list []people.Person) tea.Cmd {
	return func() tea.Msg {
		return DateActivatedMsg{Day: day, Month: month, Year: year, Date: iso, People: list}
	}
}

// SnackTimerMsg carries a deferred snack transition back onto the update loop.
type SnackTimerMsg struct {
	Fire func()
}

// Describe implements the logging helper.
func (SnackTimerMsg) Describe() string { return "snack timer" }

// SnackChangedMsg announces a new snapshot of the snack stack.
type SnackChangedMsg struct {
	Snacks []snack.Snack
}

// Describe implements the logging helper.
func (m SnackChangedMsg) Describe() string {
	parts := make([]string, 0, len(m.Snacks))
	for _, s := range m.Snacks {
		parts = append(parts, fmt.Sprintf("%d:%s", s.ID, s.Phase))
	}
	return fmt.Sprintf(`snacks:[%s]`, strings.Join(parts, " "))
}

// AssignmentsChangedMsg is emitted after the assignment index was reloaded.
type AssignmentsChangedMsg struct {
	Index *people.Index
	Date  string
	Err   error
}

// Describe implements the logging helper.
func (m AssignmentsChangedMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf(`reload failed: %v`, m.Err)
	}
	return fmt.Sprintf(`date:%q dates:%d`, m.Date, m.Index.Len())
}

// ThemeChangedMsg reports the palette now in use.
type ThemeChangedMsg struct {
	Dark bool
	Err  error
}

// Describe implements the logging helper.
func (m ThemeChangedMsg) Describe() string {
	name := "light"
	if m.Dark {
		name = "dark"
	}
	if m.Err != nil {
		return fmt.Sprintf(`theme:%q err:%v`, name, m.Err)
	}
	return fmt.Sprintf(`theme:%q`, name)
}
