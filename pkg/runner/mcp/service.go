// Package mcp exposes the calendar and its assignments over the Model
// Context Protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/contcal/pkg/grid"
	"tableflip.dev/contcal/pkg/nav"
	"tableflip.dev/contcal/pkg/people"
	"tableflip.dev/contcal/pkg/printers"
	"tableflip.dev/contcal/pkg/store"
)

// Service coordinates persistence-backed operations that are shared by the MCP server.
type Service struct {
	Persistence store.Persistence
	Now         func() time.Time
}

var (
	// ErrBadMonth is returned for months outside 1-12.
	ErrBadMonth = errors.New("month must be 1-12")
	// ErrBadYear is returned for years outside 1-9999.
	ErrBadYear = errors.New("year must be 1-9999")
	// ErrAssignmentNotFound is returned when removing an unknown assignment.
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// Action names a navigation step.
type Action string

const (
	ActionNone     Action = ""
	ActionNext     Action = "next"
	ActionPrevious Action = "previous"
	ActionToday    Action = "today"
)

// DayAssignments is the tool payload for a single date.
type DayAssignments struct {
	Date   string          `json:"date"`
	Label  string          `json:"label,omitempty"`
	Count  int             `json:"count"`
	People []people.Person `json:"people"`
}

// AddAssignmentOptions captures the parameters used to schedule someone.
type AddAssignmentOptions struct {
	Date   string
	Name   string
	Role   string
	Task   string
	Email  string
	Phone  string
	Notes  string
	Avatar string
}

// NewService builds a service wrapper using the provided persistence layer.
func NewService(p store.Persistence) *Service {
	return &Service{Persistence: p, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service) index(ctx context.Context) (*people.Index, error) {
	if s.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	return s.Persistence.Index(ctx), nil
}

func validMonthYear(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: %d", ErrBadMonth, month)
	}
	if year < 1 || year > 9999 {
		return fmt.Errorf("%w: %d", ErrBadYear, year)
	}
	return nil
}

// MonthGrid returns the 42 cells of month (1-12) with badge counts.
func (s *Service) MonthGrid(ctx context.Context, year, month int) (printers.MonthView, error) {
	if err := validMonthYear(year, month); err != nil {
		return printers.MonthView{}, err
	}
	idx, err := s.index(ctx)
	if err != nil {
		return printers.MonthView{}, err
	}
	return printers.NewMonthView(grid.Month(year, month-1), idx, s.now()), nil
}

// Navigate applies action to year/month (1-12) and returns the resulting
// month. A zero year or month is taken from today.
func (s *Service) Navigate(ctx context.Context, year, month int, action Action) (printers.MonthView, error) {
	today := s.now()
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = int(today.Month())
	}
	if err := validMonthYear(year, month); err != nil {
		return printers.MonthView{}, err
	}
	state := nav.At(year, month-1, nav.WithClock(s.now))

	switch Action(strings.ToLower(strings.TrimSpace(string(action)))) {
	case ActionNone:
	case ActionNext:
		state.Next()
	case ActionPrevious:
		state.Previous()
	case ActionToday:
		state.Today()
	default:
		return printers.MonthView{}, fmt.Errorf("unknown action %q", action)
	}
	return s.MonthGrid(ctx, state.Year(), state.Month()+1)
}

// AssignmentsFor lists who is scheduled on date.
func (s *Service) AssignmentsFor(ctx context.Context, date string) (DayAssignments, error) {
	date = strings.TrimSpace(date)
	c, ok := grid.ParseISO(date)
	if !ok {
		return DayAssignments{}, fmt.Errorf("%w: %q", people.ErrInvalidDate, date)
	}
	idx, err := s.index(ctx)
	if err != nil {
		return DayAssignments{}, err
	}
	list := idx.AssignmentsFor(date)
	return DayAssignments{
		Date:   date,
		Label:  grid.FormatDMY(c.Day, c.Month, c.Year),
		Count:  len(list),
		People: list,
	}, nil
}

// ListDates returns every stored date with its count.
func (s *Service) ListDates(ctx context.Context) ([]printers.DateCount, error) {
	idx, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	return printers.NewDateCounts(idx), nil
}

// AddAssignment schedules a person on a date.
func (s *Service) AddAssignment(ctx context.Context, opts AddAssignmentOptions) (people.Person, error) {
	if s.Persistence == nil {
		return people.Person{}, errors.New("persistence is not configured")
	}
	date := strings.TrimSpace(opts.Date)
	if _, ok := grid.ParseISO(date); !ok {
		return people.Person{}, fmt.Errorf("%w: %q", people.ErrInvalidDate, date)
	}
	p := people.New(strings.TrimSpace(opts.Name))
	p.Role = opts.Role
	p.Task = opts.Task
	p.Email = opts.Email
	p.Phone = opts.Phone
	p.Notes = opts.Notes
	p.AvatarURL = opts.Avatar
	p.Created = s.now()
	return s.Persistence.Store(date, p)
}

// RemoveAssignment unschedules id from date.
func (s *Service) RemoveAssignment(ctx context.Context, date, id string) error {
	if s.Persistence == nil {
		return errors.New("persistence is not configured")
	}
	for _, p := range s.Persistence.List(ctx, date) {
		if p.ID == id {
			return s.Persistence.Delete(date, id)
		}
	}
	return fmt.Errorf("%w: %s on %s", ErrAssignmentNotFound, id, date)
}
