// Package snackbar renders the toast stack in the lower left corner.
package snackbar

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/contcal/pkg/snack"
	"tableflip.dev/contcal/pkg/tui/theme"
)

// MaxWidth bounds each toast.
const MaxWidth = 40

// icons prefix the message per variant.
var icons = map[snack.Variant]string{
	snack.Success: "✓",
	snack.Error:   "✗",
}

// View stacks snacks oldest first. Hiding snacks are drawn faint.
func View(th theme.Theme, snacks []snack.Snack) string {
	if len(snacks) == 0 {
		return ""
	}
	boxes := make([]string, 0, len(snacks))
	for _, s := range snacks {
		style := th.Snack.Success
		if s.Variant == snack.Error {
			style = th.Snack.Error
		}
		if !s.Visible {
			style = th.Snack.Hiding
		}
		boxes = append(boxes, style.MaxWidth(MaxWidth).Render(icons[s.Variant]+" "+s.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}
