package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/contcal/pkg/grid"
	"tableflip.dev/contcal/pkg/people"
)

// cellWidth fits "28·2 ".
const cellWidth = 5

const width = 7*cellWidth - 1

// Badge renders the assignment count shown next to a day.
func Badge(n int) string {
	switch {
	case n <= 0:
		return ""
	case n > 9:
		return "·+"
	default:
		return fmt.Sprintf("·%d", n)
	}
}

// Month prints the 6x7 panel. Borrowed days are faint, days with
// assignments bold with a count, today underlined.
func (pp *PrettyPrint) Month(panel grid.Panel, idx *people.Index, now time.Time) {
	out := pp.out()

	tf := color.New(color.FgWhite, color.Italic)
	title := panel.Title()
	mid := (width - len(title)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(out, "%s%s\n", strings.Repeat(" ", mid), title)

	h := color.New(color.Faint)
	header := make([]string, 0, 7)
	for _, wd := range grid.WeekdayHeader {
		header = append(header, fmt.Sprintf("%-*s", cellWidth-1, wd))
	}
	_, _ = h.Fprintln(out, strings.TrimRight(strings.Join(header, " "), " "))

	for w := 0; w < grid.Weeks; w++ {
		row := panel.Row(w)
		for i, c := range row {
			attrs := []color.Attribute{}
			n := idx.Count(c.ISO())
			switch {
			case !c.InMonth():
				attrs = append(attrs, color.Faint)
			case n > 0:
				attrs = append(attrs, color.Bold, color.FgHiWhite)
			}
			if c.IsToday(now) {
				attrs = append(attrs, color.Underline)
			}
			p := color.New(attrs...)

			_, _ = p.Fprintf(out, "%2d", c.Day)
			badge := Badge(n)
			_, _ = color.New(color.FgGreen).Fprint(out, badge)
			if i < len(row)-1 {
				_, _ = fmt.Fprint(out, strings.Repeat(" ", cellWidth-2-len([]rune(badge))))
			}
		}
		_, _ = fmt.Fprint(out, "\n")
	}
	pp.NewLine()
}

// Year prints the twelve panels of y one after another.
func (pp *PrettyPrint) Year(y grid.Year, idx *people.Index, now time.Time) {
	for _, panel := range y.Panels {
		pp.Month(panel, idx, now)
	}
}
