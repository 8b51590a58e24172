package snack_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"tableflip.dev/contcal/pkg/snack"
	"tableflip.dev/contcal/pkg/snack/snacktest"
)

func TestSnackHidesThenRemoves(t *testing.T) {
	sched := snacktest.New()
	s := snack.New(sched)

	created, err := s.Create("Selected 28/10/2025", snack.Success)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.Visible || created.Phase != snack.Visible {
		t.Fatalf("new snack not visible: %+v", created)
	}

	sched.Advance(2499 * time.Millisecond)
	if got := s.Snacks(); len(got) != 1 || !got[0].Visible {
		t.Fatalf("snack changed before hide deadline: %+v", got)
	}

	sched.Advance(time.Millisecond)
	got := s.Snacks()
	if len(got) != 1 {
		t.Fatalf("snack removed at hide deadline: %+v", got)
	}
	if got[0].Visible || got[0].Phase != snack.Hiding {
		t.Fatalf("snack still visible at 2500ms: %+v", got[0])
	}

	sched.Advance(500 * time.Millisecond)
	if n := s.Len(); n != 0 {
		t.Fatalf("expected snack removed at 3000ms, have %d", n)
	}
	if sched.Pending() != 0 {
		t.Fatalf("expected no pending timers, have %d", sched.Pending())
	}
}

func TestCloseCancelsPendingTransitions(t *testing.T) {
	sched := snacktest.New()
	s := snack.New(sched)

	if _, err := s.Create("hello", snack.Success); err != nil {
		t.Fatalf("create: %v", err)
	}
	sched.Advance(1000 * time.Millisecond)
	s.Close()

	if sched.Pending() != 0 {
		t.Fatalf("close left %d timers pending", sched.Pending())
	}
	sched.Advance(5 * time.Second)

	got := s.Snacks()
	if len(got) != 1 || !got[0].Visible {
		t.Fatalf("scheduled transitions ran after close: %+v", got)
	}

	if _, err := s.Create("late", snack.Error); !errors.Is(err, snack.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestSnacksStackIndependently(t *testing.T) {
	sched := snacktest.New()
	s := snack.New(sched)

	first, _ := s.Create("first", snack.Success)
	sched.Advance(1000 * time.Millisecond)
	second, _ := s.Create("second", snack.Error)

	if second.ID <= first.ID {
		t.Fatalf("ids not increasing: %d then %d", first.ID, second.ID)
	}

	sched.Advance(2000 * time.Millisecond) // t=3000
	got := s.Snacks()
	if len(got) != 1 || got[0].ID != second.ID {
		t.Fatalf("expected only second snack at 3000ms, got %+v", got)
	}
	if !got[0].Visible {
		t.Fatalf("second snack (created at 1000ms) hid early")
	}

	sched.Advance(500 * time.Millisecond)
	if got := s.Snacks(); len(got) != 1 || got[0].Visible {
		t.Fatalf("second snack should be hiding at 3500ms: %+v", got)
	}

	sched.Advance(500 * time.Millisecond)
	if s.Len() != 0 {
		t.Fatalf("expected empty stack")
	}
}

func TestReplaceLastMode(t *testing.T) {
	sched := snacktest.New()
	s := snack.New(sched, snack.WithMode(snack.ReplaceLast))

	s.Create("first", snack.Success)
	s.Create("second", snack.Success)

	got := s.Snacks()
	if len(got) != 1 || got[0].Message != "second" {
		t.Fatalf("replace mode kept %+v", got)
	}
	if sched.Pending() != 2 {
		t.Fatalf("replaced snack timers not cancelled, pending = %d", sched.Pending())
	}
}

func TestDismiss(t *testing.T) {
	sched := snacktest.New()
	s := snack.New(sched)

	sn, _ := s.Create("bye", snack.Success)
	if !s.Dismiss(sn.ID) {
		t.Fatalf("dismiss returned false")
	}
	if s.Len() != 0 || sched.Pending() != 0 {
		t.Fatalf("dismiss left len=%d pending=%d", s.Len(), sched.Pending())
	}
	if s.Dismiss(sn.ID) {
		t.Fatalf("second dismiss should fail")
	}
}

func TestOnChangeObservesEveryTransition(t *testing.T) {
	sched := snacktest.New()
	var lens []int
	s := snack.New(sched, snack.WithOnChange(func(list []snack.Snack) {
		lens = append(lens, len(list))
	}))

	s.Create("one", snack.Success)
	sched.Advance(snack.RemoveAfter)

	want := []int{1, 1, 0}
	if len(lens) != len(want) {
		t.Fatalf("onChange calls = %v, want %v", lens, want)
	}
	for i := range want {
		if lens[i] != want[i] {
			t.Fatalf("onChange calls = %v, want %v", lens, want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]snack.Mode{"": snack.Stacked, "stacked": snack.Stacked, "Replace": snack.ReplaceLast} {
		got, err := snack.ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := snack.ParseMode("bogus"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}

func TestTimerSchedulerCloseLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	removed := make(chan struct{})
	s := snack.New(snack.TimerScheduler{},
		snack.WithDurations(5*time.Millisecond, 10*time.Millisecond),
		snack.WithOnChange(func(list []snack.Snack) {
			mu.Lock()
			defer mu.Unlock()
			if len(list) == 0 {
				select {
				case <-removed:
				default:
					close(removed)
				}
			}
		}),
	)
	if _, err := s.Create("tick", snack.Success); err != nil {
		t.Fatalf("create: %v", err)
	}

	select {
	case <-removed:
	case <-time.After(2 * time.Second):
		t.Fatalf("timer scheduler never removed the snack")
	}

	if _, err := s.Create("pending", snack.Success); err != nil {
		t.Fatalf("create: %v", err)
	}
	s.Close()
}
