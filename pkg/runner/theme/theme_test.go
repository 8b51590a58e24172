package theme

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/contcal/pkg/prefs"
)

func TestDo(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	light := func() bool { return false }

	tests := map[string]struct {
		stored string
		action string
		want   string
	}{
		"show detected":   {action: "", want: "light"},
		"show stored":     {stored: "dark", action: "", want: "dark"},
		"toggle detected": {action: "toggle", want: "dark"},
		"toggle stored":   {stored: "dark", action: "toggle", want: "light"},
		"set dark":        {action: "dark", want: "dark"},
		"set light":       {stored: "dark", action: "LIGHT", want: "light"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			store := prefs.MemoryStore{}
			if tc.stored != "" {
				store[prefs.ThemeKey] = tc.stored
			}
			var buf bytes.Buffer
			th := &Theme{Store: store, Detect: light, Action: tc.action, Out: &buf}
			if err := th.Do(context.Background()); err != nil {
				t.Fatalf("do: %v", err)
			}
			if !strings.Contains(buf.String(), "calendar-theme: "+tc.want) {
				t.Fatalf("output = %q, want theme %s", buf.String(), tc.want)
			}
			if tc.action != "" && store[prefs.ThemeKey] != tc.want {
				t.Fatalf("stored = %q, want %q", store[prefs.ThemeKey], tc.want)
			}
		})
	}
}

func TestDoRejectsUnknownAction(t *testing.T) {
	th := &Theme{Store: prefs.MemoryStore{}, Action: "sepia", Out: &bytes.Buffer{}}
	if err := th.Do(context.Background()); !errors.Is(err, prefs.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestDoNotesPinnedConfig(t *testing.T) {
	var buf bytes.Buffer
	th := &Theme{Store: prefs.MemoryStore{}, Mode: prefs.Dark, Out: &buf}
	if err := th.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(buf.String(), "config pins theme to dark") {
		t.Fatalf("missing pin note: %q", buf.String())
	}
}
