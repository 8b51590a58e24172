package roster

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/contcal/pkg/people"
	"tableflip.dev/contcal/pkg/store"
)

type testConfig string

func (c testConfig) BasePath() string { return string(c) }

func load(t *testing.T) store.Persistence {
	t.Helper()
	p, err := store.Load(testConfig(t.TempDir()), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return p
}

func TestAddListRemove(t *testing.T) {
	ctx := context.Background()
	p := load(t)
	var buf bytes.Buffer

	add := &Add{Persistence: p, Date: "2025-10-28", Person: people.Person{Name: "Ada Lovelace", Role: "Engineer"}, Out: &buf}
	if err := add.Do(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	list := p.List(ctx, "2025-10-28")
	if len(list) != 1 {
		t.Fatalf("expected one assignment, got %d", len(list))
	}

	buf.Reset()
	if err := (&List{Persistence: p, Date: "2025-10-28", JSON: true, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []people.Person
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff([]string{"Ada Lovelace"}, names(got)); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}

	rm := &Remove{Persistence: p, Date: "2025-10-28", ID: list[0].ID, Out: &buf}
	if err := rm.Do(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := rm.Do(ctx); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestAddRejectsBadDate(t *testing.T) {
	add := &Add{Persistence: load(t), Date: "28/10/2025", Person: people.New("Ada"), Out: &bytes.Buffer{}}
	if err := add.Do(context.Background()); !errors.Is(err, people.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestImportThenExport(t *testing.T) {
	ctx := context.Background()
	p := load(t)
	file := filepath.Join(t.TempDir(), "people.yaml")
	body := `2025-10-28:
  - id: p1
    name: Ada Lovelace
  - id: p2
    name: Grace Hopper
2025-10-30:
  - id: p3
    name: Katherine Johnson
`
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var buf bytes.Buffer
	if err := (&Import{Persistence: p, File: file, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(buf.String(), "imported 3 assignments across 2 dates") {
		t.Fatalf("unexpected summary: %q", buf.String())
	}

	buf.Reset()
	if err := (&Export{Persistence: p, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("export: %v", err)
	}
	idx, err := people.Decode(&buf)
	if err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if diff := cmp.Diff([]string{"Ada Lovelace", "Grace Hopper"}, names(idx.AssignmentsFor("2025-10-28"))); diff != "" {
		t.Fatalf("export order (-want +got):\n%s", diff)
	}
}

func TestListAllPrintsEveryDate(t *testing.T) {
	ctx := context.Background()
	p := load(t)
	for _, d := range []string{"2025-10-28", "2025-11-02"} {
		if _, err := p.Store(d, people.New("Ada")); err != nil {
			t.Fatalf("store: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := (&List{Persistence: p, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, d := range []string{"2025-10-28", "2025-11-02"} {
		if !strings.Contains(buf.String(), d) {
			t.Fatalf("missing %s in %q", d, buf.String())
		}
	}
}

func names(list []people.Person) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.Name)
	}
	return out
}

func TestAddListRemoveInFile(t *testing.T) {
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "rota.yaml")
	var buf bytes.Buffer

	for _, name := range []string{"Ada Lovelace", "Grace Hopper"} {
		add := &Add{File: file, Date: "2025-10-28", Person: people.Person{Name: name}, Out: &buf}
		if err := add.Do(ctx); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	if err := (&Add{File: file, Date: "2025-10-28", Person: people.Person{}, Out: &buf}).Do(ctx); !errors.Is(err, people.ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}

	idx, err := people.LoadFile(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	list := idx.AssignmentsFor("2025-10-28")
	if diff := cmp.Diff([]string{"Ada Lovelace", "Grace Hopper"}, names(list)); diff != "" {
		t.Fatalf("file contents (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := (&List{File: file, Date: "2025-10-28", Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(buf.String(), "Grace Hopper") {
		t.Fatalf("expected listing from file, got %q", buf.String())
	}

	rm := &Remove{File: file, Date: "2025-10-28", ID: list[0].ID, Out: &buf}
	if err := rm.Do(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := rm.Do(ctx); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	idx, err = people.LoadFile(file)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if diff := cmp.Diff([]string{"Grace Hopper"}, names(idx.AssignmentsFor("2025-10-28"))); diff != "" {
		t.Fatalf("after remove (-want +got):\n%s", diff)
	}
}
