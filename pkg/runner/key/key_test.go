package key

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestKeyPrintsLegendAndBindings(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	if err := (&Key{Out: &buf}).Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"28·2", "two people scheduled", "28·+", "Months", "next month", "shift+tab", "toggle theme"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
