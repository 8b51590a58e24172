package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/contcal/pkg/grid"
)

// ErrBadJump is returned for jump input that names no month.
var ErrBadJump = errors.New("expected MM YYYY, YYYY-MM or a month name")

// ParseJump reads "10 2025", "2025-10", "october 2025", "oct" or "10". A
// missing year means currentYear. Month is returned 0-11.
func ParseJump(input string, currentYear int) (month, year int, err error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return 0, 0, ErrBadJump
	}

	if y, m, ok := strings.Cut(s, "-"); ok && len(y) == 4 {
		return monthYear(m, y)
	}

	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '/' || r == ',' })
	switch len(fields) {
	case 1:
		month, err = parseMonth(fields[0])
		return month, currentYear, err
	case 2:
		return monthYear(fields[0], fields[1])
	}
	return 0, 0, fmt.Errorf("%q: %w", input, ErrBadJump)
}

func monthYear(m, y string) (int, int, error) {
	month, err := parseMonth(m)
	if err != nil {
		return 0, 0, err
	}
	year, err := strconv.Atoi(y)
	if err != nil || year < 1 || year > 9999 {
		return 0, 0, fmt.Errorf("year %q: %w", y, ErrBadJump)
	}
	return month, year, nil
}

func parseMonth(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month %d: %w", n, ErrBadJump)
		}
		return n - 1, nil
	}
	if len(s) >= 3 {
		for i, name := range grid.MonthNames {
			if strings.HasPrefix(strings.ToLower(name), s) {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("month %q: %w", s, ErrBadJump)
}
