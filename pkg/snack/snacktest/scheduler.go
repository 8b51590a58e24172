// Package snacktest provides a manually advanced scheduler for exercising
// snack timing without sleeping.
package snacktest

import (
	"sort"
	"sync"
	"time"

	"tableflip.dev/contcal/pkg/snack"
)

type task struct {
	at        time.Duration
	seq       int
	fn        func()
	cancelled bool
}

// Scheduler fires deferred actions only when Advance moves simulated time
// past their deadline.
type Scheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*task
}

// New returns a scheduler at simulated time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// AfterFunc implements snack.Scheduler.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) snack.Cancel {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &task{at: s.now + d, seq: s.seq, fn: fn}
	s.pending = append(s.pending, t)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		t.cancelled = true
	}
}

// Advance moves simulated time forward by d, running due actions in deadline
// order. Actions run without the scheduler's lock held.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.at
		s.mu.Unlock()
		t.fn()
		s.mu.Lock()
	}
	s.now = target
	s.mu.Unlock()
}

// Now returns the simulated time elapsed.
func (s *Scheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending counts actions that are neither fired nor cancelled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if !t.cancelled {
			n++
		}
	}
	return n
}

func (s *Scheduler) nextDue(target time.Duration) *task {
	live := s.pending[:0]
	for _, t := range s.pending {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	s.pending = live
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].at != s.pending[j].at {
			return s.pending[i].at < s.pending[j].at
		}
		return s.pending[i].seq < s.pending[j].seq
	})
	if len(s.pending) == 0 || s.pending[0].at > target {
		return nil
	}
	t := s.pending[0]
	s.pending = s.pending[1:]
	return t
}
