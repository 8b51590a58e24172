package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/contcal/pkg/tui/components/eventlog"
	"tableflip.dev/contcal/pkg/tui/theme"
)

type options struct {
	full   bool
	width  int
	height int
	dark   bool
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "testbed",
		Short: "Run the calendar component testbed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(newTestbedModel(opts))
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.full, "full", false, "use the full terminal window")
	rootCmd.PersistentFlags().IntVar(&opts.width, "width", 80, "window width when not fullscreen")
	rootCmd.PersistentFlags().IntVar(&opts.height, "height", 20, "window height when not fullscreen")
	rootCmd.PersistentFlags().BoolVar(&opts.dark, "dark", false, "render with the dark palette")

	rootCmd.AddCommand(newCalendarCmd(&opts))
	rootCmd.AddCommand(newDetailCmd(&opts))
	rootCmd.AddCommand(newHelpCmd(&opts))
	rootCmd.AddCommand(newSnacksCmd(&opts))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type testbedModel struct {
	fullscreen bool
	maxWidth   int
	maxHeight  int

	termWidth  int
	termHeight int

	theme  theme.Theme
	events *eventlog.Model

	frameWidth  int
	frameHeight int
	innerWidth  int
	innerHeight int
	eventHeight int
	layoutDirty bool
}

func newTestbedModel(opts options) *testbedModel {
	th := theme.New(opts.dark)
	return &testbedModel{
		fullscreen:  opts.full,
		maxWidth:    opts.width,
		maxHeight:   opts.height,
		theme:       th,
		events:      eventlog.New(th, 400),
		layoutDirty: true,
	}
}

func (m *testbedModel) Init() tea.Cmd { return nil }

// Update records msg and handles the keys every harness shares.
func (m *testbedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.events.Record(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.layoutDirty = true
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *testbedModel) View() string {
	content := lipgloss.NewStyle().
		Padding(1, 2).
		Render(
			"Testbed UI\n\n" +
				"Run a subcommand to exercise a component.\n\n" +
				"Press q to quit.",
		)
	return m.composeView(content)
}

func (m *testbedModel) composeView(content string) string {
	if m.termWidth == 0 || m.termHeight == 0 {
		return "Resizing…"
	}
	m.ensureLayout()

	frameBlock := m.placeFrame(m.renderFrame(content))
	if events := m.renderEvents(); events != "" {
		gap := strings.Repeat(" ", m.termWidth)
		frameBlock = lipgloss.JoinVertical(lipgloss.Left, frameBlock, gap, events)
	}
	return frameBlock
}

func (m *testbedModel) renderFrame(content string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Palette.Accent)

	body := lipgloss.NewStyle().
		Width(m.innerWidth).
		Height(m.innerHeight).
		MaxWidth(m.innerWidth).
		MaxHeight(m.innerHeight).
		Align(lipgloss.Left, lipgloss.Top).
		Render(content)
	return border.Render(body)
}

func (m *testbedModel) renderEvents() string {
	if m.eventHeight == 0 {
		return ""
	}
	return m.events.View()
}

func (m *testbedModel) placeFrame(frame string) string {
	height := max(1, m.termHeight-m.eventHeight-frameGap)
	return lipgloss.Place(m.termWidth, height, lipgloss.Center, lipgloss.Top, frame)
}

func (m *testbedModel) ensureLayout() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	if !m.layoutDirty && m.frameWidth != 0 && m.frameHeight != 0 {
		return
	}

	eventHeight := m.computeEventHeight()
	frameSpace := max(minFrameHeight, m.termHeight-eventHeight-frameGap)

	width := clamp(m.maxWidth, 20, m.termWidth-4)
	height := clamp(m.maxHeight, minFrameHeight, frameSpace)
	if m.fullscreen {
		width = clamp(m.termWidth, 20, m.termWidth)
		height = frameSpace
	}

	m.frameWidth = width
	m.frameHeight = height
	m.innerWidth = max(1, width-2)
	m.innerHeight = max(1, height-2)
	m.eventHeight = eventHeight
	m.layoutDirty = false

	if eventHeight > 0 {
		m.events.SetSize(m.termWidth, eventHeight)
	}
}

func (m *testbedModel) computeEventHeight() int {
	available := m.termHeight - minFrameHeight - frameGap
	if available < minEventHeight {
		return 0
	}
	return min(clamp(m.termHeight/4, minEventHeight, maxEventHeight), available)
}

func (m *testbedModel) setTheme(th theme.Theme) {
	m.theme = th
	m.events.SetTheme(th)
}

func clamp(value, lo, hi int) int {
	if hi <= 0 {
		return lo
	}
	return max(lo, min(value, hi))
}

const (
	minFrameHeight = 12
	minEventHeight = 5
	maxEventHeight = 12
	frameGap       = 1
)
