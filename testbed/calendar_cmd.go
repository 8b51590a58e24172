package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/contcal/pkg/config"
	"tableflip.dev/contcal/pkg/grid"
	"tableflip.dev/contcal/pkg/nav"
	"tableflip.dev/contcal/pkg/tui/components/calendar"
	"tableflip.dev/contcal/pkg/tui/events"
	"tableflip.dev/contcal/pkg/tui/theme"
)

func newCalendarCmd(opts *options) *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Preview the month panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := config.ParseSize(size)
			if err != nil {
				return err
			}
			return run(newCalendarModel(*opts, parsed, time.Now()))
		},
	}

	cmd.Flags().StringVar(&size, "size", "md", "cell size (md, lg or xl)")
	return cmd
}

type calendarModel struct {
	*testbedModel
	nav      *nav.State
	calendar *calendar.Model
	day      int
}

func newCalendarModel(opts options, size config.Size, now time.Time) *calendarModel {
	base := newTestbedModel(opts)
	state := nav.New(nav.WithClock(func() time.Time { return now }))
	cal := calendar.New(base.theme, theme.MetricsFor(size), state.Current())
	cal.SetIndex(sampleIndex(now))
	cal.SetClock(func() time.Time { return now })
	cal.SetPanel(state.Current(), now.Day())
	return &calendarModel{testbedModel: base, nav: state, calendar: cal, day: now.Day()}
}

func (m *calendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, cmd := m.testbedModel.Update(msg); cmd != nil {
		return m, cmd
	}
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "h", "left":
		m.day--
	case "l", "right":
		m.day++
	case "k", "up":
		m.day -= 7
	case "j", "down":
		m.day += 7
	case "n":
		m.nav.Next()
	case "p":
		m.nav.Previous()
	case "t":
		m.nav.Today()
	case "enter", "space":
		c := m.calendar.Cursor()
		return m, events.DateActivatedCmd(c.Day, c.Month, c.Year, c.ISO(), nil)
	default:
		return m, nil
	}
	last := grid.DaysIn(m.nav.Year(), m.nav.Month())
	m.day = max(1, min(m.day, last))
	m.calendar.SetPanel(m.nav.Current(), m.day)
	return m, nil
}

func (m *calendarModel) View() string {
	return m.composeView(m.calendar.View())
}
