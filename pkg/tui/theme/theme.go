// Package theme holds the light and dark Lip Gloss styles of the calendar.
package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/contcal/pkg/config"
)

// Palette is the small set of base colours every style derives from.
type Palette struct {
	Background colorful.Color
	Foreground colorful.Color
	Accent     colorful.Color
	Success    colorful.Color
	Error      colorful.Color
}

var (
	darkPalette = Palette{
		Background: mustHex("#1d1f21"),
		Foreground: mustHex("#e6e6e6"),
		Accent:     mustHex("#8f7aff"),
		Success:    mustHex("#3fb27f"),
		Error:      mustHex("#e5534b"),
	}
	lightPalette = Palette{
		Background: mustHex("#fbfbfa"),
		Foreground: mustHex("#24292f"),
		Accent:     mustHex("#5b3cc4"),
		Success:    mustHex("#1a7f37"),
		Error:      mustHex("#cf222e"),
	}
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Muted blends the foreground towards the background.
func (p Palette) Muted(t float64) color.Color {
	return p.Foreground.BlendLab(p.Background, t).Clamped()
}

// Tint blends c towards the background, for soft fills.
func (p Palette) Tint(c colorful.Color, t float64) color.Color {
	return c.BlendLab(p.Background, t).Clamped()
}

// Theme centralizes Lip Gloss styles for the calendar UI.
type Theme struct {
	Dark    bool
	Palette Palette

	Calendar CalendarTheme
	Dialog   DialogTheme
	Snack    SnackTheme
	Footer   FooterTheme
}

// CalendarTheme styles the month panel.
type CalendarTheme struct {
	Frame   lipgloss.Style
	Title   lipgloss.Style
	Weekday lipgloss.Style
	Day     lipgloss.Style
	Outside lipgloss.Style
	Badge   lipgloss.Style
	Today   lipgloss.Style
	Cursor  lipgloss.Style
}

// DialogTheme styles the assignment dialog.
type DialogTheme struct {
	Frame        lipgloss.Style
	Title        lipgloss.Style
	Avatar       lipgloss.Style
	ActiveAvatar lipgloss.Style
	Name         lipgloss.Style
	Role         lipgloss.Style
	Label        lipgloss.Style
	Value        lipgloss.Style
}

// SnackTheme styles the toast stack.
type SnackTheme struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Hiding  lipgloss.Style
}

// FooterTheme styles the bottom status line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Prompt lipgloss.Style
}

// New returns the dark or light theme.
func New(dark bool) Theme {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	muted := p.Muted(0.45)
	faint := p.Muted(0.7)

	avatar := lipgloss.NewStyle().
		Foreground(p.Background).
		Background(muted).
		Bold(true).
		Padding(0, 1)

	snack := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return Theme{
		Dark:    dark,
		Palette: p,
		Calendar: CalendarTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(faint).
				Padding(0, 1),
			Title:   lipgloss.NewStyle().Bold(true).Foreground(p.Foreground),
			Weekday: lipgloss.NewStyle().Foreground(muted).Bold(true),
			Day:     lipgloss.NewStyle().Foreground(p.Foreground),
			Outside: lipgloss.NewStyle().Foreground(faint),
			Badge:   lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
			Today:   lipgloss.NewStyle().Underline(true).Bold(true),
			Cursor:  lipgloss.NewStyle().Background(p.Tint(p.Accent, 0.55)).Foreground(p.Foreground),
		},
		Dialog: DialogTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(p.Accent).
				Padding(1, 2),
			Title:        lipgloss.NewStyle().Bold(true).Foreground(p.Foreground),
			Avatar:       avatar,
			ActiveAvatar: avatar.Background(p.Accent),
			Name:         lipgloss.NewStyle().Foreground(p.Foreground),
			Role:         lipgloss.NewStyle().Foreground(muted).Italic(true),
			Label:        lipgloss.NewStyle().Foreground(muted),
			Value:        lipgloss.NewStyle().Foreground(p.Foreground),
		},
		Snack: SnackTheme{
			Success: snack.BorderForeground(p.Success).Foreground(p.Success),
			Error:   snack.BorderForeground(p.Error).Foreground(p.Error),
			Hiding:  snack.BorderForeground(faint).Foreground(faint),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(muted),
			Status: lipgloss.NewStyle().Foreground(faint),
			Prompt: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		},
	}
}

// Metrics are the layout sizes for a configured calendar size.
type Metrics struct {
	CellWidth   int
	CellHeight  int
	DialogWidth int
}

// MetricsFor maps the size preset onto cell and dialog dimensions.
func MetricsFor(size config.Size) Metrics {
	switch size {
	case config.SizeMD:
		return Metrics{CellWidth: 5, CellHeight: 1, DialogWidth: 44}
	case config.SizeXL:
		return Metrics{CellWidth: 9, CellHeight: 3, DialogWidth: 64}
	default:
		return Metrics{CellWidth: 7, CellHeight: 2, DialogWidth: 54}
	}
}
