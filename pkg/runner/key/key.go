// Package key prints the calendar legend and key bindings.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/contcal/pkg/printers"
	"tableflip.dev/contcal/pkg/tui/keys"
)

// groups title each row of keys.Map.FullHelp.
var groups = []string{"Move", "Months", "Dialog", "General"}

// Key prints the badge legend followed by the TUI key bindings.
type Key struct {
	Out io.Writer
}

// Do renders both tables.
func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	bold := color.New(color.Bold)

	_, _ = fmt.Fprintln(out, "")
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("  Cell"), bold.Sprint("Meaning"))
	tbl.AddRow("28"+printers.Badge(2), "two people scheduled")
	tbl.AddRow("28"+printers.Badge(10), "more than nine people")
	tbl.AddRow("28", "nobody scheduled")
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")

	k.Bindings(ctx, out, keys.Default())
	_, _ = fmt.Fprintln(out, "")
	return nil
}

// Bindings renders km grouped by area.
func (k *Key) Bindings(_ context.Context, out io.Writer, km keys.Map) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Keys"), bold.Sprint("Action"))
	for i, group := range km.FullHelp() {
		if i < len(groups) {
			tbl.AddRow("", color.New(color.Faint).Sprint(groups[i]))
		}
		for _, b := range group {
			tbl.AddRow(b.Help().Key, b.Help().Desc)
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, tbl)
}
