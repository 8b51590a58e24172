package printers

import (
	"encoding/json"
	"fmt"
	"time"

	"tableflip.dev/contcal/pkg/grid"
	"tableflip.dev/contcal/pkg/people"
)

// CellView is the machine readable form of a grid cell.
type CellView struct {
	Date    string `json:"date"`
	Day     int    `json:"day"`
	InMonth bool   `json:"inMonth"`
	Today   bool   `json:"today,omitempty"`
	Count   int    `json:"count"`
}

// MonthView is the machine readable form of a panel. Month is 1-12.
type MonthView struct {
	Title string     `json:"title"`
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Cells []CellView `json:"cells"`
}

// NewMonthView flattens panel and annotates each cell with its badge count.
func NewMonthView(panel grid.Panel, idx *people.Index, now time.Time) MonthView {
	v := MonthView{
		Title: panel.Title(),
		Year:  panel.Year,
		Month: panel.Month + 1,
		Cells: make([]CellView, 0, grid.Cells),
	}
	for _, c := range panel.Cells {
		v.Cells = append(v.Cells, CellView{
			Date:    c.ISO(),
			Day:     c.Day,
			InMonth: c.InMonth(),
			Today:   c.IsToday(now),
			Count:   idx.Count(c.ISO()),
		})
	}
	return v
}

// DateCount is one entry of a date listing.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Valid bool   `json:"valid"`
}

// NewDateCounts lists every date of idx with its badge count.
func NewDateCounts(idx *people.Index) []DateCount {
	out := make([]DateCount, 0, idx.Len())
	for _, iso := range idx.Dates() {
		_, ok := grid.ParseISO(iso)
		out = append(out, DateCount{Date: iso, Count: idx.Count(iso), Valid: ok})
	}
	return out
}

// JSON writes v indented.
func (pp *PrettyPrint) JSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}
