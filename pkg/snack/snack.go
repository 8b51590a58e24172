// Package snack implements short-lived notifications ("snacks") that fade
// out and then disappear on a fixed schedule.
package snack

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// HideAfter is when a snack stops being visible and starts its exit.
	HideAfter = 2500 * time.Millisecond
	// RemoveAfter is when a snack is dropped from the stack.
	RemoveAfter = 3000 * time.Millisecond
)

// ErrClosed is returned by Create once the stack has been closed.
var ErrClosed = errors.New("snack: stack is closed")

// Variant selects the snack's icon and colour.
type Variant string

const (
	Success Variant = "success"
	Error   Variant = "error"
)

// Phase is the lifecycle position of a snack.
type Phase int

const (
	// Visible snacks are fully shown.
	Visible Phase = iota
	// Hiding snacks are playing their exit and will be removed shortly.
	Hiding
	// Removed snacks are no longer part of the stack.
	Removed
)

func (p Phase) String() string {
	switch p {
	case Visible:
		return "visible"
	case Hiding:
		return "hiding"
	case Removed:
		return "removed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Mode decides what happens to existing snacks when a new one arrives.
type Mode int

const (
	// Stacked keeps earlier snacks on screen.
	Stacked Mode = iota
	// ReplaceLast drops earlier snacks.
	ReplaceLast
)

// ParseMode accepts "stacked" or "replace".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stacked", "stack":
		return Stacked, nil
	case "replace", "replace-last", "single":
		return ReplaceLast, nil
	}
	return Stacked, fmt.Errorf("snack: unknown mode %q", s)
}

func (m Mode) String() string {
	if m == ReplaceLast {
		return "replace"
	}
	return "stacked"
}

// Snack is a snapshot of one notification.
type Snack struct {
	ID      uint64
	Created time.Time
	Message string
	Variant Variant
	Visible bool
	Phase   Phase
}

type entry struct {
	Snack
	timers []Cancel
}

func (e *entry) cancel() {
	for _, c := range e.timers {
		c()
	}
	e.timers = nil
}

// Stack owns the ordered set of live snacks and their timers. It is safe for
// concurrent use.
type Stack struct {
	mu sync.Mutex

	sched       Scheduler
	now         func() time.Time
	mode        Mode
	hideAfter   time.Duration
	removeAfter time.Duration
	onChange    func([]Snack)

	nextID  uint64
	entries []*entry
	closed  bool
}

// Option configures a Stack.
type Option func(*Stack)

// WithMode sets the stacking behaviour.
func WithMode(m Mode) Option {
	return func(s *Stack) { s.mode = m }
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Stack) { s.now = now }
}

// WithDurations overrides the hide and remove delays.
func WithDurations(hide, remove time.Duration) Option {
	return func(s *Stack) {
		s.hideAfter = hide
		s.removeAfter = remove
	}
}

// WithOnChange registers a hook called with a snapshot after every
// transition. It runs outside the stack's lock.
func WithOnChange(fn func([]Snack)) Option {
	return func(s *Stack) { s.onChange = fn }
}

// New creates a stack scheduling its transitions on sched.
func New(sched Scheduler, opts ...Option) *Stack {
	if sched == nil {
		sched = TimerScheduler{}
	}
	s := &Stack{
		sched:       sched,
		now:         time.Now,
		hideAfter:   HideAfter,
		removeAfter: RemoveAfter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create appends a visible snack and schedules its hide and removal.
func (s *Stack) Create(message string, variant Variant) (Snack, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Snack{}, ErrClosed
	}
	if s.mode == ReplaceLast {
		for _, e := range s.entries {
			e.cancel()
		}
		s.entries = nil
	}

	s.nextID++
	id := s.nextID
	e := &entry{Snack: Snack{
		ID:      id,
		Created: s.now(),
		Message: message,
		Variant: variant,
		Visible: true,
		Phase:   Visible,
	}}
	e.timers = append(e.timers,
		s.sched.AfterFunc(s.hideAfter, func() { s.hide(id) }),
		s.sched.AfterFunc(s.removeAfter, func() { s.remove(id) }),
	)
	s.entries = append(s.entries, e)
	snap := e.Snack
	s.mu.Unlock()

	s.changed()
	return snap, nil
}

// Dismiss removes a snack before its timers fire.
func (s *Stack) Dismiss(id uint64) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if s.closed || i < 0 {
		s.mu.Unlock()
		return false
	}
	s.entries[i].cancel()
	s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
	s.mu.Unlock()

	s.changed()
	return true
}

// Snacks returns the live snacks in creation order.
func (s *Stack) Snacks() []Snack {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Len returns the number of live snacks.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close cancels every pending transition. Snacks already on the stack are
// left as they are and no new ones can be created.
func (s *Stack) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, e := range s.entries {
		e.cancel()
	}
}

func (s *Stack) hide(id uint64) {
	s.mu.Lock()
	i := s.indexOf(id)
	if s.closed || i < 0 || s.entries[i].Phase != Visible {
		s.mu.Unlock()
		return
	}
	s.entries[i].Visible = false
	s.entries[i].Phase = Hiding
	s.mu.Unlock()

	s.changed()
}

func (s *Stack) remove(id uint64) {
	s.mu.Lock()
	i := s.indexOf(id)
	if s.closed || i < 0 {
		s.mu.Unlock()
		return
	}
	s.entries[i].Phase = Removed
	s.entries[i].timers = nil
	s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
	s.mu.Unlock()

	s.changed()
}

func (s *Stack) changed() {
	if s.onChange == nil {
		return
	}
	s.onChange(s.Snacks())
}

func (s *Stack) indexOf(id uint64) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Stack) snapshot() []Snack {
	out := make([]Snack, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Snack
	}
	return out
}
