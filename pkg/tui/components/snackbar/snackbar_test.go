package snackbar

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"

	"tableflip.dev/contcal/pkg/snack"
	"tableflip.dev/contcal/pkg/tui/theme"
)

func stripANSIString(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestViewEmpty(t *testing.T) {
	if got := View(theme.New(true), nil); got != "" {
		t.Fatalf("expected empty view, got %q", got)
	}
}

func TestViewStacksOldestFirst(t *testing.T) {
	snacks := []snack.Snack{
		{ID: 1, Message: "Selected 28/10/2025", Variant: snack.Success, Visible: false, Phase: snack.Hiding},
		{ID: 2, Message: "No one scheduled on 29/10/2025", Variant: snack.Error, Visible: true},
	}
	view := stripANSIString(View(theme.New(true), snacks))

	first := strings.Index(view, "✓ Selected 28/10/2025")
	second := strings.Index(view, "✗ No one scheduled on 29/10/2025")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("unexpected stack:\n%s", view)
	}
}
