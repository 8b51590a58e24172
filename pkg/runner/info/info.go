// Package info reports where configuration and assignments are stored.
package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/contcal/pkg/config"
	"tableflip.dev/contcal/pkg/store"
)

type Info struct {
	Config      *config.Config
	ConfigFile  string
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	if n.Config == nil {
		return errors.New("info: config required")
	}
	if n.Persistence == nil {
		return errors.New("info: failed to create persistence object")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("CONTCAL_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "CONTCAL_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "CONTCAL_CONFIG_PATH env var not set")
	}

	configFile := n.ConfigFile
	if configFile == "" {
		configFile = "(none, using defaults)"
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("config"), configFile)
	tbl.AddRow(bold.Sprint("path"), n.Config.BasePath())
	tbl.AddRow(bold.Sprint("theme"), n.Config.Theme)
	tbl.AddRow(bold.Sprint("size"), n.Config.Size)
	tbl.AddRow(bold.Sprint("snack.mode"), n.Config.SnackMode)
	if n.Config.LogFile != "" {
		tbl.AddRow(bold.Sprint("log.file"), n.Config.LogFile)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(out, tbl)

	idx := n.Persistence.Index(ctx)
	total := 0
	for _, iso := range idx.Dates() {
		total += idx.Count(iso)
	}
	_, _ = fmt.Fprintf(out, "\n%d assignments across %d dates\n", total, idx.Len())
	if bad := idx.Malformed(); len(bad) > 0 {
		w := color.New(color.FgYellow)
		_, _ = w.Fprintf(out, "%d keys are not dates and never show on the calendar\n", len(bad))
	}
	return nil
}
