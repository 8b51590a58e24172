package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/contcal/pkg/printers"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	color.NoColor = true

	dir := t.TempDir()
	cfg := filepath.Join(dir, "contcal.yaml")
	if err := os.WriteFile(cfg, []byte("path: "+filepath.Join(dir, "db")+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return runWith(t, cfg, args...)
}

func runWith(t *testing.T, cfg string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", cfg))
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("contcal %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestSubcommands(t *testing.T) {
	want := []string{"ui", "grid", "people", "theme", "mcp", "info", "key", "version", "completion"}
	cmd := New()
	for _, name := range want {
		found := false
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing subcommand %q", name)
		}
	}
}

func TestGridJSON(t *testing.T) {
	out := run(t, "grid", "10", "2025", "--json")
	var view printers.MonthView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if view.Title != "October 2025" || len(view.Cells) != 42 {
		t.Fatalf("unexpected view %s with %d cells", view.Title, len(view.Cells))
	}
}

func TestGridByName(t *testing.T) {
	out := run(t, "grid", "february", "2024")
	if !strings.Contains(out, "February 2024") || !strings.Contains(out, "29") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestPeopleAddAndList(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "contcal.yaml")
	if err := os.WriteFile(cfg, []byte("path: "+filepath.Join(dir, "db")+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	color.NoColor = true

	out := runWith(t, cfg, "people", "add", "2025-10-28", "--name", "Ada Lovelace", "--role", "Engineer")
	if !strings.Contains(out, "added Ada Lovelace to 2025-10-28") {
		t.Fatalf("unexpected add output: %s", out)
	}

	out = runWith(t, cfg, "people", "2025-10-28")
	if !strings.Contains(out, "Ada Lovelace") || !strings.Contains(out, "Engineer") {
		t.Fatalf("unexpected list output:\n%s", out)
	}

	out = runWith(t, cfg, "grid", "10", "2025")
	if !strings.Contains(out, "28·1") {
		t.Fatalf("expected badge in grid:\n%s", out)
	}
}

func TestPeopleFileFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "contcal.yaml")
	if err := os.WriteFile(cfg, []byte("path: "+filepath.Join(dir, "db")+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	rota := filepath.Join(dir, "rota.yaml")
	color.NoColor = true

	runWith(t, cfg, "people", "add", "2025-10-28", "--name", "Grace Hopper", "--people", rota)
	if _, err := os.Stat(rota); err != nil {
		t.Fatalf("expected people file to be written: %v", err)
	}

	out := runWith(t, cfg, "people", "2025-10-28", "--people", rota)
	if !strings.Contains(out, "Grace Hopper") {
		t.Fatalf("expected file listing:\n%s", out)
	}
	out = runWith(t, cfg, "people", "2025-10-28")
	if strings.Contains(out, "Grace Hopper") {
		t.Fatalf("store should be untouched:\n%s", out)
	}
}

func TestPeopleAddRejectsBadInput(t *testing.T) {
	cmd := New()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"people", "add", "28/10/2025", "--name", "Ada"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for a non ISO date")
	}

	cmd = New()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"people", "add", "2025-10-28"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error without a name")
	}
}

func TestThemeCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "contcal.yaml")
	if err := os.WriteFile(cfg, []byte("path: "+filepath.Join(dir, "db")+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	runWith(t, cfg, "theme", "dark")
	if out := runWith(t, cfg, "theme"); !strings.Contains(out, "dark") {
		t.Fatalf("expected dark theme, got %s", out)
	}
}

func TestListenURL(t *testing.T) {
	tests := []struct {
		addr net.Addr
		host string
		tls  bool
		want string
	}{
		{&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 8080}, "127.0.0.1", false, "http://127.0.0.1:8080/mcp"},
		{&net.TCPAddr{IP: net.IPv4zero, Port: 9000}, "0.0.0.0", true, "https://127.0.0.1:9000/mcp"},
		{&net.TCPAddr{IP: net.ParseIP("::1"), Port: 80}, "::1", false, "http://[::1]:80/mcp"},
	}
	for _, tt := range tests {
		if got := listenURL(tt.addr, tt.host, "/mcp", tt.tls); got != tt.want {
			t.Fatalf("listenURL(%v) = %s, want %s", tt.addr, got, tt.want)
		}
	}
}
