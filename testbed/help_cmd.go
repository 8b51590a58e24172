package main

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/contcal/pkg/tui/components/help"
	"tableflip.dev/contcal/pkg/tui/keys"
)

func newHelpCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "help",
		Short: "Render the help overlay component",
		RunE: func(cmd *cobra.Command, args []string) error {
			base := newTestbedModel(*opts)
			return run(&helpModel{
				testbedModel: base,
				help:         help.New(base.theme, keys.Default(), 72, 18),
			})
		},
	}
	return cmd
}

type helpModel struct {
	*testbedModel
	help *help.Model
}

func (m *helpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, cmd := m.testbedModel.Update(msg); cmd != nil {
		return m, cmd
	}
	if _, ok := msg.(tea.WindowSizeMsg); ok {
		m.ensureLayout()
		m.help.SetSize(m.innerWidth, m.innerHeight)
		return m, nil
	}
	_, cmd := m.help.Update(msg)
	return m, cmd
}

func (m *helpModel) View() string {
	return m.composeView(m.help.View())
}
