// Package theme shows or changes the stored light/dark preference.
package theme

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/contcal/pkg/prefs"
)

// Theme applies Action ("", light, dark or toggle) to the stored preference.
type Theme struct {
	Store  prefs.Store
	Mode   prefs.Mode
	Detect prefs.Detector
	Action string
	Out    io.Writer
}

func (t *Theme) Do(_ context.Context) error {
	if t.Store == nil {
		return errors.New("theme: store required")
	}
	out := t.Out
	if out == nil {
		out = os.Stdout
	}

	// Explicit CLI actions always act on the stored value, not the config.
	th := prefs.Load(prefs.Auto, t.Store, t.Detect)

	switch strings.ToLower(strings.TrimSpace(t.Action)) {
	case "":
	case "toggle":
		if err := th.Toggle(); err != nil {
			return err
		}
	case string(prefs.Dark):
		if err := th.Set(true); err != nil {
			return err
		}
	case string(prefs.Light):
		if err := th.Set(false); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", prefs.ErrUnknownMode, t.Action)
	}

	b := color.New(color.Bold)
	_, _ = fmt.Fprintf(out, "%s %s\n", prefs.ThemeKey+":", b.Sprint(th.Name()))
	if t.Mode == prefs.Light || t.Mode == prefs.Dark {
		f := color.New(color.Faint)
		_, _ = f.Fprintf(out, "config pins theme to %s; the stored value applies when theme is auto\n", t.Mode)
	}
	return nil
}
