package people

import (
	"sort"

	"tableflip.dev/contcal/pkg/grid"
)

// Index maps ISO dates to the people assigned on them.
type Index struct {
	byDate map[string][]Person
}

// NewIndex copies byDate into a new Index. Lists are ordered by creation time
// when present, otherwise kept in the given order.
func NewIndex(byDate map[string][]Person) *Index {
	idx := &Index{byDate: make(map[string][]Person, len(byDate))}
	for iso, list := range byDate {
		if len(list) == 0 {
			continue
		}
		cp := append([]Person(nil), list...)
		Sort(cp)
		idx.byDate[iso] = cp
	}
	return idx
}

// AssignmentsFor returns the people on iso; unknown dates yield an empty list.
func (idx *Index) AssignmentsFor(iso string) []Person {
	if idx == nil {
		return []Person{}
	}
	list := idx.byDate[iso]
	out := make([]Person, len(list))
	copy(out, list)
	return out
}

// Count returns the badge count for iso.
func (idx *Index) Count(iso string) int {
	if idx == nil {
		return 0
	}
	return len(idx.byDate[iso])
}

// Len returns the number of dates with at least one assignment.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.byDate)
}

// Dates lists all keys in ascending order.
func (idx *Index) Dates() []string {
	if idx == nil {
		return nil
	}
	dates := make([]string, 0, len(idx.byDate))
	for iso := range idx.byDate {
		dates = append(dates, iso)
	}
	sort.Strings(dates)
	return dates
}

// Malformed lists keys that are not valid dates. They are kept but never
// match a calendar cell.
func (idx *Index) Malformed() []string {
	var bad []string
	for _, iso := range idx.Dates() {
		if _, ok := grid.ParseISO(iso); !ok {
			bad = append(bad, iso)
		}
	}
	return bad
}

// Add appends p to iso, assigning an ID when missing.
func (idx *Index) Add(iso string, p Person) (Person, error) {
	if _, ok := grid.ParseISO(iso); !ok {
		return Person{}, ErrInvalidDate
	}
	if err := p.Validate(); err != nil {
		return Person{}, err
	}
	p.EnsureID()
	if idx.byDate == nil {
		idx.byDate = make(map[string][]Person)
	}
	idx.byDate[iso] = append(idx.byDate[iso], p)
	return p, nil
}

// Remove deletes the person with id from iso.
func (idx *Index) Remove(iso, id string) bool {
	list := idx.byDate[iso]
	for i, p := range list {
		if p.ID != id {
			continue
		}
		list = append(list[:i:i], list[i+1:]...)
		if len(list) == 0 {
			delete(idx.byDate, iso)
		} else {
			idx.byDate[iso] = list
		}
		return true
	}
	return false
}

// Map returns a deep copy of the underlying mapping.
func (idx *Index) Map() map[string][]Person {
	out := make(map[string][]Person, idx.Len())
	for _, iso := range idx.Dates() {
		out[iso] = idx.AssignmentsFor(iso)
	}
	return out
}

// Sort orders people by creation time, keeping input order for ties.
func Sort(list []Person) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Created.Before(list[j].Created)
	})
}
