// Package month prints calendar panels for the grid command.
package month

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/contcal/pkg/nav"
	"tableflip.dev/contcal/pkg/printers"
	"tableflip.dev/contcal/pkg/store"
)

// Month renders one panel, or all twelve when WholeYear is set.
type Month struct {
	Persistence store.Persistence
	// Nav selects the panel; nil means today.
	Nav       *nav.State
	WholeYear bool
	JSON      bool

	Now func() time.Time
	Out io.Writer
}

// Do prints the selected month.
func (m *Month) Do(ctx context.Context) error {
	if m.Persistence == nil {
		return errors.New("month: persistence required")
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	state := m.Nav
	if state == nil {
		state = nav.New(nav.WithClock(now))
	}

	idx := m.Persistence.Index(ctx)
	pp := &printers.PrettyPrint{Out: m.Out}

	switch {
	case m.JSON && m.WholeYear:
		y := state.Panels()
		views := make([]printers.MonthView, 0, len(y.Panels))
		for _, p := range y.Panels {
			views = append(views, printers.NewMonthView(p, idx, now()))
		}
		return pp.JSON(views)
	case m.JSON:
		return pp.JSON(printers.NewMonthView(state.Current(), idx, now()))
	case m.WholeYear:
		pp.Year(state.Panels(), idx, now())
	default:
		pp.Month(state.Current(), idx, now())
	}
	return nil
}

