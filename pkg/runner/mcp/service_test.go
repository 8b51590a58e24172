package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/contcal/pkg/people"
	"tableflip.dev/contcal/pkg/store"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func newService(t *testing.T) *Service {
	t.Helper()
	p, err := store.Load(testConfig{path: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	svc := NewService(p)
	svc.Now = func() time.Time { return time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestServiceMonthGrid(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	if _, err := svc.AddAssignment(ctx, AddAssignmentOptions{Date: "2025-10-28", Name: "Ada Lovelace"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	view, err := svc.MonthGrid(ctx, 2025, 10)
	if err != nil {
		t.Fatalf("month grid: %v", err)
	}
	if view.Title != "October 2025" || view.Month != 10 || len(view.Cells) != 42 {
		t.Fatalf("unexpected view: %s month=%d cells=%d", view.Title, view.Month, len(view.Cells))
	}
	first := view.Cells[0]
	if first.Date != "2025-09-28" || first.InMonth {
		t.Fatalf("unexpected first cell %+v", first)
	}
	if c := view.Cells[3]; c.Date != "2025-10-01" || !c.InMonth {
		t.Fatalf("unexpected first day cell %+v", c)
	}
	if c := view.Cells[30]; c.Date != "2025-10-28" || c.Count != 1 {
		t.Fatalf("expected badge on 28th, got %+v", c)
	}
	if c := view.Cells[17]; !c.Today {
		t.Fatalf("expected 15th marked today, got %+v", c)
	}

	if _, err := svc.MonthGrid(ctx, 2025, 13); !errors.Is(err, ErrBadMonth) {
		t.Fatalf("expected ErrBadMonth, got %v", err)
	}
	if _, err := svc.MonthGrid(ctx, 0, 1); !errors.Is(err, ErrBadYear) {
		t.Fatalf("expected ErrBadYear, got %v", err)
	}
}

func TestServiceNavigate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	tests := []struct {
		year, month int
		action      Action
		want        string
	}{
		{2025, 12, ActionNext, "January 2026"},
		{2025, 1, ActionPrevious, "December 2024"},
		{1999, 6, ActionToday, "October 2025"},
		{0, 0, ActionNone, "October 2025"},
		{0, 5, ActionNone, "May 2025"},
		{2023, 0, ActionNext, "November 2023"},
		{2024, 2, "NEXT", "March 2024"},
	}
	for _, tt := range tests {
		view, err := svc.Navigate(ctx, tt.year, tt.month, tt.action)
		if err != nil {
			t.Fatalf("navigate %d/%d %s: %v", tt.month, tt.year, tt.action, err)
		}
		if view.Title != tt.want {
			t.Fatalf("navigate %d/%d %s = %s, want %s", tt.month, tt.year, tt.action, view.Title, tt.want)
		}
	}

	if _, err := svc.Navigate(ctx, 2025, 1, "sideways"); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestServiceAssignments(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	added, err := svc.AddAssignment(ctx, AddAssignmentOptions{Date: "2025-10-28", Name: "Grace Hopper", Role: "Admiral"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == "" {
		t.Fatal("expected generated id")
	}

	day, err := svc.AssignmentsFor(ctx, "2025-10-28")
	if err != nil {
		t.Fatalf("assignments: %v", err)
	}
	if day.Count != 1 || day.Label != "28/10/2025" || day.People[0].Role != "Admiral" {
		t.Fatalf("unexpected day %+v", day)
	}

	dates, err := svc.ListDates(ctx)
	if err != nil {
		t.Fatalf("list dates: %v", err)
	}
	if len(dates) != 1 || dates[0].Date != "2025-10-28" || dates[0].Count != 1 || !dates[0].Valid {
		t.Fatalf("unexpected dates %+v", dates)
	}

	if err := svc.RemoveAssignment(ctx, "2025-10-28", "nobody"); !errors.Is(err, ErrAssignmentNotFound) {
		t.Fatalf("expected ErrAssignmentNotFound, got %v", err)
	}
	if err := svc.RemoveAssignment(ctx, "2025-10-28", added.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if day, _ := svc.AssignmentsFor(ctx, "2025-10-28"); day.Count != 0 {
		t.Fatalf("expected empty day after remove, got %+v", day)
	}
}

func TestServiceRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	if _, err := svc.AssignmentsFor(ctx, "28/10/2025"); !errors.Is(err, people.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := svc.AddAssignment(ctx, AddAssignmentOptions{Date: "2025-10-28"}); !errors.Is(err, people.ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
	if _, err := (&Service{}).ListDates(ctx); err == nil {
		t.Fatal("expected error without persistence")
	}
}

func TestParseTransport(t *testing.T) {
	for in, want := range map[string]Transport{"": TransportHTTP, "HTTP": TransportHTTP, "stdio": TransportStdio} {
		got, err := ParseTransport(in)
		if err != nil || got != want {
			t.Fatalf("ParseTransport(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseTransport("carrier-pigeon"); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	srv := NewServer("contcal", "test", newService(t))
	if srv == nil {
		t.Fatal("expected server")
	}
}
