// Package overlay draws dialogs and toasts on top of a rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// Placement controls overlay alignment. Horizontal and Vertical use the Lip
// Gloss positions, so the zero value is top left.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
}

// Center places the foreground in the middle of the screen.
var Center = Placement{Horizontal: lipgloss.Center, Vertical: lipgloss.Center}

// BottomLeft places the foreground in the lower left corner.
func BottomLeft(marginX, marginY int) Placement {
	return Placement{Horizontal: lipgloss.Left, Vertical: lipgloss.Bottom, MarginX: marginX, MarginY: marginY}
}

// Compose overlays foreground atop background, which is first normalized to
// width x height. Background content outside the overlay is kept, including
// its styling.
func Compose(background string, width, height int, foreground string, placement Placement) string {
	bgLines := normalize(background, width, height)
	if foreground == "" || width <= 0 || height <= 0 {
		return strings.Join(bgLines, "\n")
	}

	fgLines := strings.Split(foreground, "\n")
	overlayWidth := 0
	for _, line := range fgLines {
		if w := lipgloss.Width(line); w > overlayWidth {
			overlayWidth = w
		}
	}
	overlayWidth = min(overlayWidth, width)
	overlayHeight := min(len(fgLines), height)
	if overlayWidth == 0 {
		return strings.Join(bgLines, "\n")
	}

	offsetX := offset(width, overlayWidth, placement.Horizontal, placement.MarginX)
	offsetY := offset(height, overlayHeight, placement.Vertical, placement.MarginY)

	for row := 0; row < overlayHeight; row++ {
		y := offsetY + row
		fg := pad(truncate.String(fgLines[row], uint(overlayWidth)), overlayWidth)
		base := bgLines[y]
		bgLines[y] = cut(base, 0, offsetX) + fg + cut(base, offsetX+overlayWidth, width)
	}
	return strings.Join(bgLines, "\n")
}

func normalize(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = pad(truncate.String(lines[i], uint(max(width, 0))), width)
	}
	return lines
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// cut returns the cells [start, end) of s. Escape sequences are kept so the
// visible slice retains its styling, and a reset closes the slice.
func cut(s string, start, end int) string {
	if start >= end {
		return ""
	}
	var b strings.Builder
	pos := 0
	inSeq := false
	styled := false
	for _, r := range s {
		if r == ansi.Marker {
			inSeq = true
			b.WriteRune(r)
			continue
		}
		if inSeq {
			b.WriteRune(r)
			if ansi.IsTerminator(r) {
				inSeq = false
				styled = true
			}
			continue
		}
		w := ansi.PrintableRuneWidth(string(r))
		if pos >= start && pos+w <= end {
			b.WriteRune(r)
		}
		pos += w
		if pos >= end {
			break
		}
	}
	if styled {
		b.WriteString("\x1b[0m")
	}
	return b.String()
}

func offset(total, size int, pos lipgloss.Position, margin int) int {
	var o int
	switch {
	case pos <= lipgloss.Left:
		o = margin
	case pos >= lipgloss.Right:
		o = total - size - margin
	default:
		o = int(float64(total-size) * float64(pos))
	}
	return max(0, min(o, total-size))
}
