// Package grid computes the fixed 6x7 day matrix rendered for a calendar
// month, including the leading and trailing days borrowed from the adjacent
// months.
package grid

import (
	"fmt"
	"time"
)

const (
	// Weeks is the number of rows in every panel.
	Weeks = 6
	// Cells is the number of cells in every panel.
	Cells = Weeks * 7
)

// MonthNames are indexed by month 0-11.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// WeekdayHeader labels the seven columns, Sunday first.
var WeekdayHeader = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Cell is a single day in a month panel.
type Cell struct {
	// Day of the resolved month, 1-31.
	Day int
	// Offset is -1, 0 or +1 relative to the displayed month.
	Offset int
	// Year and Month (0-11) the day actually belongs to.
	Year  int
	Month int
}

// InMonth reports whether the cell belongs to the displayed month.
func (c Cell) InMonth() bool { return c.Offset == 0 }

// ISO renders the resolved date as YYYY-MM-DD.
func (c Cell) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", c.Year, c.Month+1, c.Day)
}

// Date returns midnight of the resolved date in loc.
func (c Cell) Date(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(c.Year, time.Month(c.Month+1), c.Day, 0, 0, 0, 0, loc)
}

// IsToday compares the resolved date with now's calendar date.
func (c Cell) IsToday(now time.Time) bool {
	return c.Year == now.Year() && c.Month == int(now.Month())-1 && c.Day == now.Day()
}

// Panel is the row-major 42 cell matrix for one month.
type Panel struct {
	Year  int
	Month int
	Cells [Cells]Cell
}

// Title returns "Month YYYY".
func (p Panel) Title() string {
	return fmt.Sprintf("%s %d", MonthNames[p.Month], p.Year)
}

// Row returns the seven cells of week w (0-5).
func (p Panel) Row(w int) []Cell {
	return p.Cells[w*7 : w*7+7]
}

// IndexOf returns the position of the current-month day, or -1.
func (p Panel) IndexOf(day int) int {
	for i, c := range p.Cells {
		if c.InMonth() && c.Day == day {
			return i
		}
	}
	return -1
}

// Year holds the twelve panels of a calendar year.
type Year struct {
	Year   int
	Panels [12]Panel
}

// IsLeap applies the Gregorian leap year rule.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthLengths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysIn returns the number of days in month (0-11) of year.
func DaysIn(year, month int) int {
	mustMonth(month)
	if month == 1 && IsLeap(year) {
		return 29
	}
	return monthLengths[month]
}

// FirstWeekday returns the weekday (0 = Sunday) of the first day of month.
func FirstWeekday(year, month int) int {
	mustMonth(month)
	return int(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// Month builds the panel for month (0-11) of year. A month outside 0-11 is a
// caller bug; use Normalize first.
func Month(year, month int) Panel {
	mustMonth(month)

	prevYear, prevMonth := year, month-1
	if month == 0 {
		prevYear, prevMonth = year-1, 11
	}
	nextYear, nextMonth := year, month+1
	if month == 11 {
		nextYear, nextMonth = year+1, 0
	}

	first := FirstWeekday(year, month)
	days := DaysIn(year, month)
	prevDays := DaysIn(prevYear, prevMonth)

	p := Panel{Year: year, Month: month}
	i := 0
	for d := prevDays - first + 1; d <= prevDays; d++ {
		p.Cells[i] = Cell{Day: d, Offset: -1, Year: prevYear, Month: prevMonth}
		i++
	}
	for d := 1; d <= days; d++ {
		p.Cells[i] = Cell{Day: d, Offset: 0, Year: year, Month: month}
		i++
	}
	for d := 1; i < Cells; d++ {
		p.Cells[i] = Cell{Day: d, Offset: 1, Year: nextYear, Month: nextMonth}
		i++
	}
	return p
}

// YearPanels builds all twelve panels for year.
func YearPanels(year int) Year {
	y := Year{Year: year}
	for m := 0; m < 12; m++ {
		y.Panels[m] = Month(year, m)
	}
	return y
}

// Normalize folds a month index that is one step outside 0-11 (as produced
// by adjacent-month cells) back into range, rolling the year.
func Normalize(day, month, year int) (int, int, int) {
	year += floorDiv(month, 12)
	month = ((month % 12) + 12) % 12
	return day, month, year
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mustMonth(month int) {
	if month < 0 || month > 11 {
		panic(fmt.Sprintf("grid: month %d out of range 0-11", month))
	}
}
