package app

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/contcal/pkg/snack"
	"tableflip.dev/contcal/pkg/tui/events"
)

// programScheduler delivers snack transitions as messages so they run on
// the Bubble Tea update loop instead of a timer goroutine.
type programScheduler struct {
	program atomic.Pointer[tea.Program]
}

func (s *programScheduler) attach(p *tea.Program) {
	s.program.Store(p)
}

// AfterFunc implements snack.Scheduler.
func (s *programScheduler) AfterFunc(d time.Duration, fn func()) snack.Cancel {
	t := time.AfterFunc(d, func() {
		if p := s.program.Load(); p != nil {
			p.Send(events.SnackTimerMsg{Fire: fn})
		}
	})
	return func() { t.Stop() }
}
