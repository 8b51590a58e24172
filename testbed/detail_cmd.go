package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/contcal/pkg/people"
	"tableflip.dev/contcal/pkg/selection"
	"tableflip.dev/contcal/pkg/tui/components/detail"
	"tableflip.dev/contcal/pkg/tui/theme"
)

func newDetailCmd(opts *options) *cobra.Command {
	var day int

	cmd := &cobra.Command{
		Use:   "detail",
		Short: "Preview the assignment dialog",
		Long:  "Opens the dialog for a sample day. Tab and shift+tab cycle people, t toggles the palette.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(newDetailModel(*opts, time.Now(), day))
		},
	}

	cmd.Flags().IntVar(&day, "day", 14, "sample day of the current month to open (3, 14, 20 or 28)")
	return cmd
}

type detailModel struct {
	*testbedModel
	dark   bool
	sel    selection.Controller
	detail *detail.Model
}

func newDetailModel(opts options, now time.Time, day int) *detailModel {
	base := newTestbedModel(opts)
	m := &detailModel{
		testbedModel: base,
		dark:         opts.dark,
		detail:       detail.New(base.theme, 54),
	}
	idx := sampleIndex(now)
	iso := time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
	m.open(idx, iso)
	return m
}

func (m *detailModel) open(idx *people.Index, iso string) {
	m.sel.Activate(iso, idx.AssignmentsFor(iso))
	m.detail.Sync(&m.sel)
}

func (m *detailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, cmd := m.testbedModel.Update(msg); cmd != nil {
		return m, cmd
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ensureLayout()
		m.detail.SetWidth(min(54, m.innerWidth))
	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "right":
			m.sel.Next()
		case "shift+tab", "left":
			m.sel.Previous()
		case "esc":
			m.sel.Close()
		case "t":
			m.dark = !m.dark
			m.setTheme(theme.New(m.dark))
			m.detail.SetTheme(m.theme)
		}
		m.detail.Sync(&m.sel)
	}
	return m, nil
}

func (m *detailModel) View() string {
	if !m.detail.Visible() {
		return m.composeView("dialog closed, press q to quit")
	}
	return m.composeView(m.detail.View())
}
