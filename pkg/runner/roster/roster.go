// Package roster lists and edits the people assigned to dates.
package roster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"tableflip.dev/contcal/pkg/grid"
	"tableflip.dev/contcal/pkg/people"
	"tableflip.dev/contcal/pkg/printers"
	"tableflip.dev/contcal/pkg/store"
)

// List prints the assignments of Date, or every date when Date is empty.
// File, when set, is read instead of Persistence.
type List struct {
	Persistence store.Persistence
	File        string
	Date        string
	JSON        bool
	Out         io.Writer
}

func (l *List) Do(ctx context.Context) error {
	idx, err := source(ctx, l.Persistence, l.File)
	if err != nil {
		return err
	}
	pp := &printers.PrettyPrint{Out: l.Out}

	if l.Date != "" {
		list := idx.AssignmentsFor(l.Date)
		if l.JSON {
			return pp.JSON(list)
		}
		pp.People(l.Date, list)
		return nil
	}

	if l.JSON {
		return pp.JSON(idx.Map())
	}
	pp.Dates(idx)
	for _, iso := range idx.Dates() {
		pp.People(iso, idx.AssignmentsFor(iso))
	}
	return nil
}

// Add stores Person on Date. File, when set, is edited instead of
// Persistence and created if missing.
type Add struct {
	Persistence store.Persistence
	File        string
	Logger      *zap.Logger
	Date        string
	Person      people.Person
	Out         io.Writer
}

func (a *Add) Do(_ context.Context) error {
	if _, ok := grid.ParseISO(a.Date); !ok {
		return fmt.Errorf("roster: %q: %w", a.Date, people.ErrInvalidDate)
	}
	var (
		p   people.Person
		err error
	)
	switch {
	case a.File != "":
		err = editFile(a.File, func(idx *people.Index) error {
			p, err = idx.Add(a.Date, a.Person)
			return err
		})
	case a.Persistence != nil:
		p, err = a.Persistence.Store(a.Date, a.Person)
	default:
		return errors.New("roster: persistence required")
	}
	if err != nil {
		return err
	}
	logger(a.Logger).Info("assignment added", zap.String("date", a.Date), zap.String("id", p.ID))
	_, _ = fmt.Fprintf(out(a.Out), "added %s to %s (%s)\n", p.Name, a.Date, p.ID)
	return nil
}

// Remove deletes the assignment ID from Date, in File when set.
type Remove struct {
	Persistence store.Persistence
	File        string
	Logger      *zap.Logger
	Date        string
	ID          string
	Out         io.Writer
}

func (r *Remove) Do(_ context.Context) error {
	var err error
	switch {
	case r.File != "":
		err = editFile(r.File, func(idx *people.Index) error {
			if !idx.Remove(r.Date, r.ID) {
				return fmt.Errorf("roster: %s on %s: %w", r.ID, r.Date, os.ErrNotExist)
			}
			return nil
		})
	case r.Persistence != nil:
		err = r.Persistence.Delete(r.Date, r.ID)
	default:
		return errors.New("roster: persistence required")
	}
	if err != nil {
		return err
	}
	logger(r.Logger).Info("assignment removed", zap.String("date", r.Date), zap.String("id", r.ID))
	_, _ = fmt.Fprintf(out(r.Out), "removed %s from %s\n", r.ID, r.Date)
	return nil
}

// Import loads a YAML or JSON people file into the store.
type Import struct {
	Persistence store.Persistence
	Logger      *zap.Logger
	File        string
	Out         io.Writer
}

func (i *Import) Do(ctx context.Context) error {
	if i.Persistence == nil {
		return errors.New("roster: persistence required")
	}
	idx, err := people.LoadFile(i.File)
	if err != nil {
		return err
	}
	for _, bad := range idx.Malformed() {
		logger(i.Logger).Warn("importing assignments under a key that is not a date", zap.String("key", bad))
	}
	n, err := i.Persistence.Import(ctx, idx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out(i.Out), "imported %d assignments across %d dates\n", n, idx.Len())
	return nil
}

// Export writes every assignment as YAML.
type Export struct {
	Persistence store.Persistence
	Out         io.Writer
}

func (e *Export) Do(ctx context.Context) error {
	if e.Persistence == nil {
		return errors.New("roster: persistence required")
	}
	return people.Encode(out(e.Out), e.Persistence.Index(ctx))
}

// source returns the assignments of file, or of p when file is empty.
func source(ctx context.Context, p store.Persistence, file string) (*people.Index, error) {
	if file != "" {
		return people.LoadFile(file)
	}
	if p == nil {
		return nil, errors.New("roster: persistence required")
	}
	return p.Index(ctx), nil
}

// editFile loads file, applies edit and writes the result back. A missing
// file starts empty.
func editFile(file string, edit func(*people.Index) error) error {
	idx, err := people.LoadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		idx, err = people.NewIndex(nil), nil
	}
	if err != nil {
		return err
	}
	if err := edit(idx); err != nil {
		return err
	}
	return people.SaveFile(file, idx)
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
