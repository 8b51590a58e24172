// Package nav tracks which year and month the calendar is showing.
package nav

import (
	"time"

	"tableflip.dev/contcal/pkg/grid"
)

// State is the displayed year and selected month (0-11).
type State struct {
	year  int
	month int

	now func() time.Time

	panels   grid.Year
	computed bool
}

// Option configures a State.
type Option func(*State)

// WithClock overrides the wall clock used by Today.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// New starts at the current month of the configured clock.
func New(opts ...Option) *State {
	s := &State{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.Today()
	return s
}

// At starts at an explicit month; out-of-range months are folded.
func At(year, month int, opts ...Option) *State {
	s := New(opts...)
	s.Jump(month, year)
	return s
}

// Year returns the displayed year.
func (s *State) Year() int { return s.year }

// Month returns the selected month index.
func (s *State) Month() int { return s.month }

// Next advances one month, rolling into January of the following year.
func (s *State) Next() {
	if s.month == 11 {
		s.month = 0
		s.year++
		return
	}
	s.month++
}

// Previous steps back one month, rolling into December of the prior year.
func (s *State) Previous() {
	if s.month == 0 {
		s.month = 11
		s.year--
		return
	}
	s.month--
}

// Today jumps to the clock's current month.
func (s *State) Today() {
	t := s.now()
	s.year = t.Year()
	s.month = int(t.Month()) - 1
}

// SetMonth selects a month of the displayed year, clamped to 0-11.
func (s *State) SetMonth(month int) {
	switch {
	case month < 0:
		month = 0
	case month > 11:
		month = 11
	}
	s.month = month
}

// SetYear changes the displayed year keeping the month.
func (s *State) SetYear(year int) {
	s.year = year
}

// Jump moves to month of year, rolling any month overflow into the year.
func (s *State) Jump(month, year int) {
	_, s.month, s.year = grid.Normalize(1, month, year)
}

// Panels returns the twelve panels of the displayed year, rebuilding them
// only after the year changed.
func (s *State) Panels() grid.Year {
	if !s.computed || s.panels.Year != s.year {
		s.panels = grid.YearPanels(s.year)
		s.computed = true
	}
	return s.panels
}

// Current returns the selected month's panel.
func (s *State) Current() grid.Panel {
	return s.Panels().Panels[s.month]
}
