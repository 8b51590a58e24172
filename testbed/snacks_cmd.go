package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/contcal/pkg/snack"
	"tableflip.dev/contcal/pkg/tui/components/eventlog"
	"tableflip.dev/contcal/pkg/tui/components/snackbar"
	"tableflip.dev/contcal/pkg/tui/events"
)

func newSnacksCmd(opts *options) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "snacks",
		Short: "Push toasts and watch them expire",
		Long:  "Press s to push a success toast and e to push an error toast.",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := snack.ParseMode(mode)
			if err != nil {
				return err
			}
			m := newSnacksModel(*opts)
			p := tea.NewProgram(m, tea.WithAltScreen())
			m.stack = snack.New(snack.SchedulerFunc(func(d time.Duration, fn func()) snack.Cancel {
				t := time.AfterFunc(d, func() { p.Send(events.SnackTimerMsg{Fire: fn}) })
				return func() { t.Stop() }
			}), snack.WithMode(parsed))
			defer m.stack.Close()
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&mode, "mode", snack.Stacked.String(), "stacked or replace")
	return cmd
}

type snacksModel struct {
	*testbedModel
	stack  *snack.Stack
	pushed int
}

func newSnacksModel(opts options) *snacksModel {
	return &snacksModel{testbedModel: newTestbedModel(opts)}
}

func (m *snacksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, cmd := m.testbedModel.Update(msg); cmd != nil {
		return m, cmd
	}
	switch msg := msg.(type) {
	case events.SnackTimerMsg:
		msg.Fire()
		return m, m.changed()
	case tea.KeyPressMsg:
		variant := snack.Success
		switch msg.String() {
		case "s":
		case "e":
			variant = snack.Error
		default:
			return m, nil
		}
		m.pushed++
		if _, err := m.stack.Create(fmt.Sprintf("toast #%d", m.pushed), variant); err != nil {
			m.events.Append(eventlog.Entry{Source: "snacks", Summary: "create", Detail: err.Error(), Level: eventlog.LevelError})
			return m, nil
		}
		return m, m.changed()
	}
	return m, nil
}

func (m *snacksModel) changed() tea.Cmd {
	snapshot := m.stack.Snacks()
	return func() tea.Msg { return events.SnackChangedMsg{Snacks: snapshot} }
}

func (m *snacksModel) View() string {
	body := snackbar.View(m.theme, m.stack.Snacks())
	if body == "" {
		body = "no toasts, press s or e"
	}
	return m.composeView(body)
}
