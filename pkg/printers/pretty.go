package printers

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/contcal/pkg/people"
)

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, singular, plural string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " "+singular)
	default:
		_, _ = c.Fprintln(pp.out(), " "+plural)
	}
}

// People prints the assignments of one date as a table.
func (pp *PrettyPrint) People(iso string, list []people.Person) {
	pp.TitleWithCount(iso, len(list), "person", "people")

	if len(list) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	h := color.New(color.Faint)
	tbl := uitable.New()
	tbl.MaxColWidth = 40
	tbl.Wrap = true
	tbl.AddRow(h.Sprint("ID"), h.Sprint("NAME"), h.Sprint("ROLE"), h.Sprint("TASK"), h.Sprint("EMAIL"), h.Sprint("PHONE"), h.Sprint("NOTES"))
	for _, p := range list {
		tbl.AddRow(
			shortID(p.ID),
			p.Name,
			p.RoleOrDash(),
			people.OrDash(p.Task),
			people.OrDash(p.Email),
			people.OrDash(p.Phone),
			people.OrDash(p.Notes),
		)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Dates prints every date of idx with its badge count.
func (pp *PrettyPrint) Dates(idx *people.Index) {
	dates := idx.Dates()
	pp.TitleWithCount("Assignments", idx.Len(), "date", "dates")
	if len(dates) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	bad := map[string]bool{}
	for _, iso := range idx.Malformed() {
		bad[iso] = true
	}
	w := color.New(color.FgYellow)
	tbl := uitable.New()
	for _, iso := range dates {
		label := iso
		if bad[iso] {
			label = w.Sprintf("%s (not a date)", iso)
		}
		tbl.AddRow(label, idx.Count(iso))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
