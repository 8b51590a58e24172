package store

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"tableflip.dev/contcal/pkg/people"
	"tableflip.dev/contcal/pkg/prefs"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func load(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(testConfig{path: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return p
}

func TestLoadRequiresPath(t *testing.T) {
	if _, err := Load(testConfig{}, nil); err == nil {
		t.Fatal("expected error for empty base path")
	}
}

func TestStoreListDelete(t *testing.T) {
	ctx := context.Background()
	p := load(t)

	first := people.New("Ada Lovelace")
	first.Created = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	second := people.New("Grace Hopper")
	second.Created = time.Date(2025, 10, 1, 10, 0, 0, 0, time.UTC)

	// Stored out of order; List sorts by creation time.
	if _, err := p.Store("2025-10-28", second); err != nil {
		t.Fatalf("store: %v", err)
	}
	stored, err := p.Store("2025-10-28", first)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if stored.ID == "" {
		t.Fatal("expected id to be assigned")
	}

	list := p.List(ctx, "2025-10-28")
	if len(list) != 2 || list[0].Name != "Ada Lovelace" || list[1].Name != "Grace Hopper" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if got := p.List(ctx, "2025-10-29"); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}

	if err := p.Delete("2025-10-28", stored.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := p.Delete("2025-10-28", stored.ID); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist on second delete, got %v", err)
	}
	if got := p.List(ctx, "2025-10-28"); len(got) != 1 {
		t.Fatalf("expected one remaining, got %+v", got)
	}
}

func TestStoreValidates(t *testing.T) {
	p := load(t)
	if _, err := p.Store("", people.New("Ada")); !errors.Is(err, people.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := p.Store("2025-10-28", people.Person{}); !errors.Is(err, people.ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
}

func TestImportAndIndex(t *testing.T) {
	ctx := context.Background()
	p := load(t)

	src, err := people.Decode(strings.NewReader(`
2025-10-28:
  - id: p1
    name: Ada Lovelace
  - id: p2
    name: Grace Hopper
not-a-date:
  - id: p3
    name: Nobody
`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	n, err := p.Import(ctx, src)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 3 {
		t.Fatalf("imported %d, want 3", n)
	}

	idx := p.Index(ctx)
	got := idx.AssignmentsFor("2025-10-28")
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p2" {
		t.Fatalf("unexpected assignments: %+v", got)
	}
	if len(idx.AssignmentsFor("not-a-date")) != 1 {
		t.Fatalf("malformed key should survive a round trip")
	}
	if all := p.MapAll(ctx); len(all) != 2 {
		t.Fatalf("expected two dates, got %d", len(all))
	}
}

func TestPrefsRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := load(t)

	if _, ok, err := p.Get(prefs.ThemeKey); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := p.Set(prefs.ThemeKey, "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := p.Get(prefs.ThemeKey)
	if err != nil || !ok || v != "dark" {
		t.Fatalf("get = %q %v %v", v, ok, err)
	}

	// Preferences live beside the assignments but are never listed as one.
	if all := p.MapAll(ctx); len(all) != 0 {
		t.Fatalf("prefs leaked into assignments: %+v", all)
	}
}

func TestSegmentRoundTrip(t *testing.T) {
	for _, s := range []string{"2025-10-28", "not/a/date", "", "ünïcødé"} {
		if got := fromSegment(toSegment(s)); got != s {
			t.Fatalf("round trip %q = %q", s, got)
		}
	}
}

func TestPersistenceWatchEmitsDateChanges(t *testing.T) {
	p := load(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	if _, err := p.Store("2025-10-28", people.New("Ada")); err != nil {
		t.Fatalf("store: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventDateChanged {
				if evt.Date != "2025-10-28" {
					t.Fatalf("expected date 2025-10-28, got %q", evt.Date)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for date change event")
		}
	}
}

func TestPersistenceWatchEmitsPrefsChanges(t *testing.T) {
	p := load(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := p.Set(prefs.ThemeKey, "light"); err != nil {
		t.Fatalf("set: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventPrefsChanged {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for prefs event")
		}
	}
}

func TestThrottleCoalescesBursts(t *testing.T) {
	th := newEventThrottle(10 * time.Millisecond)
	defer th.Stop()

	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }
	th.Enqueue(Event{Type: EventDateChanged, Date: "2025-10-28"}, send)
	th.Enqueue(Event{Type: EventDateChanged, Date: "2025-10-28"}, send)

	select {
	case ev := <-got:
		if ev.Type != EventDateChanged || ev.Date != "2025-10-28" {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for flush")
	}
	select {
	case ev := <-got:
		t.Fatalf("duplicate event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestThrottleSendsNothingAfterStop(t *testing.T) {
	th := newEventThrottle(time.Hour)
	events := make(chan Event, 1)
	send := func(ev Event) { events <- ev }

	th.Enqueue(Event{Type: EventInvalidated}, send)
	th.Stop()
	close(events)

	// A flush whose timer already fired must see the stop and not send on
	// the closed channel.
	th.flush(send)
	th.Enqueue(Event{Type: EventPrefsChanged}, send)
	th.flush(send)
}
