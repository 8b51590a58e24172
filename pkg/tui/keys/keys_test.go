package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
)

func TestBindingsDoNotOverlap(t *testing.T) {
	seen := map[string]string{}
	for _, group := range Default().FullHelp() {
		for _, b := range group {
			if b.Help().Key == "" || b.Help().Desc == "" {
				t.Fatalf("binding %v has no help", b.Keys())
			}
			for _, k := range b.Keys() {
				if prev, ok := seen[k]; ok {
					t.Fatalf("key %q bound to both %q and %q", k, prev, b.Help().Desc)
				}
				seen[k] = b.Help().Desc
			}
		}
	}
}

func TestMatchesKeyPress(t *testing.T) {
	m := Default()
	tests := []struct {
		msg  tea.KeyPressMsg
		want key.Binding
	}{
		{tea.KeyPressMsg{Code: 'n', Text: "n"}, m.Next},
		{tea.KeyPressMsg{Code: '[', Text: "["}, m.Previous},
		{tea.KeyPressMsg{Code: tea.KeyEnter}, m.Activate},
		{tea.KeyPressMsg{Code: tea.KeyDown}, m.Down},
		{tea.KeyPressMsg{Code: tea.KeyEscape}, m.Close},
		{tea.KeyPressMsg{Code: 'x', Text: "x"}, m.Dismiss},
		{tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}, m.Quit},
	}
	for _, tc := range tests {
		if !key.Matches(tc.msg, tc.want) {
			t.Fatalf("%q should match %q", tc.msg.String(), tc.want.Help().Desc)
		}
	}
}
