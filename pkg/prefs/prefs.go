// Package prefs resolves and persists the light/dark theme preference.
package prefs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// ThemeKey is the preference key holding "light" or "dark".
const ThemeKey = "calendar-theme"

// ErrUnknownMode is returned for theme names other than light, dark or auto.
var ErrUnknownMode = errors.New("prefs: unknown theme mode")

// Mode is the configured theme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
	Auto  Mode = "auto"
)

// ParseMode validates a theme name; empty means auto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return Auto, nil
	case Light, Dark, Auto:
		return m, nil
	}
	return Auto, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Store is a string key/value store for preferences.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Detector reports whether the environment prefers a dark theme.
type Detector func() bool

// TerminalDetector asks the terminal for its background colour.
func TerminalDetector() bool {
	return termenv.HasDarkBackground()
}

// Resolve picks dark or light. Explicit modes win; auto reads the stored
// preference and falls back to detect.
func Resolve(mode Mode, store Store, detect Detector) bool {
	switch mode {
	case Dark:
		return true
	case Light:
		return false
	}
	if store != nil {
		if v, ok, err := store.Get(ThemeKey); err == nil && ok {
			switch Mode(v) {
			case Dark:
				return true
			case Light:
				return false
			}
		}
	}
	if detect == nil {
		return false
	}
	return detect()
}

// Theme is the live theme state with write-through persistence.
type Theme struct {
	mode  Mode
	dark  bool
	store Store
}

// Load resolves mode once at start-up.
func Load(mode Mode, store Store, detect Detector) *Theme {
	return &Theme{mode: mode, dark: Resolve(mode, store, detect), store: store}
}

// Mode returns the configured mode.
func (t *Theme) Mode() Mode { return t.mode }

// Dark reports whether the dark palette is active.
func (t *Theme) Dark() bool { return t.dark }

// Name returns "dark" or "light".
func (t *Theme) Name() Mode {
	if t.dark {
		return Dark
	}
	return Light
}

// Toggle flips the palette and stores the new choice.
func (t *Theme) Toggle() error {
	return t.Set(!t.dark)
}

// Set selects a palette and stores it.
func (t *Theme) Set(dark bool) error {
	t.dark = dark
	if t.store == nil {
		return nil
	}
	if err := t.store.Set(ThemeKey, string(t.Name())); err != nil {
		return fmt.Errorf("prefs: save theme: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store.
type MemoryStore map[string]string

// Get implements Store.
func (m MemoryStore) Get(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

// Set implements Store.
func (m MemoryStore) Set(key, value string) error {
	m[key] = value
	return nil
}
