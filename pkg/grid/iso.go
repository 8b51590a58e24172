package grid

import "time"

const isoLayout = "2006-01-02"

// ParseISO parses a strict YYYY-MM-DD date. The returned cell has Offset 0.
func ParseISO(s string) (Cell, bool) {
	if len(s) != len(isoLayout) {
		return Cell{}, false
	}
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return Cell{}, false
	}
	return Cell{Day: t.Day(), Year: t.Year(), Month: int(t.Month()) - 1}, true
}

// FormatDMY renders the dd/mm/yyyy label used in notifications.
func FormatDMY(day, month, year int) string {
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC).Format("02/01/2006")
}
