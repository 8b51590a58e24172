package people

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const sample = `
2025-10-28:
  - id: p1
    name: Ana Souza
    role: Sales
    task: Client meeting (ACME)
    email: ana@example.com
    notes: Bring the updated proposal.
  - id: p2
    name: Carlos Lima
    role: Support
2025-10-30:
  - name: Marina Castro
    role: Marketing
not-a-date:
  - id: p9
    name: Nobody
`

func TestDecodeKeepsFileOrder(t *testing.T) {
	idx, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	got := idx.AssignmentsFor("2025-10-28")
	ids := []string{got[0].ID, got[1].ID}
	if diff := cmp.Diff([]string{"p1", "p2"}, ids); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if got[0].Task != "Client meeting (ACME)" {
		t.Fatalf("task = %q", got[0].Task)
	}

	marina := idx.AssignmentsFor("2025-10-30")
	if len(marina) != 1 || marina[0].ID == "" {
		t.Fatalf("expected generated id, got %+v", marina)
	}
}

func TestAssignmentsForUnknownIsEmpty(t *testing.T) {
	idx, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := idx.AssignmentsFor("2025-10-29")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if idx.Count("2025-10-29") != 0 {
		t.Fatalf("expected zero count")
	}

	var nilIdx *Index
	if n := len(nilIdx.AssignmentsFor("2025-10-28")); n != 0 {
		t.Fatalf("nil index returned %d people", n)
	}
}

func TestAssignmentsForReturnsCopy(t *testing.T) {
	idx := NewIndex(map[string][]Person{"2025-10-28": {{ID: "p1", Name: "Ana"}}})
	got := idx.AssignmentsFor("2025-10-28")
	got[0].Name = "changed"
	if idx.AssignmentsFor("2025-10-28")[0].Name != "Ana" {
		t.Fatalf("index mutated through returned slice")
	}
}

func TestMalformedKeysTolerated(t *testing.T) {
	idx, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff([]string{"not-a-date"}, idx.Malformed()); diff != "" {
		t.Fatalf("malformed mismatch (-want +got):\n%s", diff)
	}
	if idx.Count("not-a-date") != 1 {
		t.Fatalf("malformed key should be kept")
	}
}

func TestAddRemove(t *testing.T) {
	idx := NewIndex(nil)
	if _, err := idx.Add("2025-13-01", Person{Name: "x"}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := idx.Add("2025-10-01", Person{}); !errors.Is(err, ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}

	p, err := idx.Add("2025-10-01", Person{Name: "Ana"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !idx.Remove("2025-10-01", p.ID) {
		t.Fatalf("remove returned false")
	}
	if idx.Len() != 0 {
		t.Fatalf("expected empty index after removing last person")
	}
	if idx.Remove("2025-10-01", p.ID) {
		t.Fatalf("second remove should be a no-op")
	}
}

func TestSortByCreated(t *testing.T) {
	base := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	idx := NewIndex(map[string][]Person{
		"2025-10-01": {
			{ID: "b", Name: "B", Created: base.Add(time.Minute)},
			{ID: "a", Name: "A", Created: base},
		},
	})
	got := idx.AssignmentsFor("2025-10-01")
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unexpected order %s, %s", got[0].ID, got[1].ID)
	}
}

func TestEncodeRoundTripsDates(t *testing.T) {
	idx, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, idx); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "2025-10-28:") {
		t.Fatalf("expected dates ascending, got:\n%s", out)
	}

	again, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode again: %v", err)
	}
	if diff := cmp.Diff(idx.Dates(), again.Dates()); diff != "" {
		t.Fatalf("dates mismatch (-want +got):\n%s", diff)
	}
}

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"Ana Souza":             "AS",
		"carlos":                "C",
		"Marina de Castro Lima": "MD",
		"":                      "",
	}
	for name, want := range tests {
		if got := (Person{Name: name}).Initials(); got != want {
			t.Errorf("Initials(%q) = %q, want %q", name, got, want)
		}
	}
}
