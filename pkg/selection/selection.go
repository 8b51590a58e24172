// Package selection tracks the day whose people are shown in the detail
// dialog and which of them is active.
package selection

import "tableflip.dev/contcal/pkg/people"

// Controller is Closed in its zero value. It is driven by a single UI loop
// and is not safe for concurrent use.
type Controller struct {
	open     bool
	date     string
	people   []people.Person
	activeID string
}

// Activate opens the dialog for iso with the first person active. Days
// without people are not selectable and leave the controller unchanged.
func (c *Controller) Activate(iso string, list []people.Person) bool {
	if len(list) == 0 {
		return false
	}
	c.open = true
	c.date = iso
	c.people = append([]people.Person(nil), list...)
	c.activeID = list[0].ID
	return true
}

// SelectEntity makes id active if it belongs to the open day.
func (c *Controller) SelectEntity(id string) bool {
	if !c.open || c.indexOf(id) < 0 {
		return false
	}
	c.activeID = id
	return true
}

// Next activates the following person, wrapping around.
func (c *Controller) Next() { c.step(1) }

// Previous activates the preceding person, wrapping around.
func (c *Controller) Previous() { c.step(-1) }

func (c *Controller) step(delta int) {
	if !c.open {
		return
	}
	n := len(c.people)
	i := c.indexOf(c.activeID)
	c.activeID = c.people[((i+delta)%n+n)%n].ID
}

// Close returns to the Closed state.
func (c *Controller) Close() {
	*c = Controller{}
}

// IsOpen reports whether a day is selected.
func (c *Controller) IsOpen() bool { return c.open }

// Date returns the selected ISO date, or "" when closed.
func (c *Controller) Date() string { return c.date }

// ActiveID returns the active person's id, or "" when closed.
func (c *Controller) ActiveID() string { return c.activeID }

// People returns the selected day's people.
func (c *Controller) People() []people.Person {
	return append([]people.Person(nil), c.people...)
}

// Active returns the active person.
func (c *Controller) Active() (people.Person, bool) {
	if i := c.indexOf(c.activeID); i >= 0 {
		return c.people[i], true
	}
	return people.Person{}, false
}

func (c *Controller) indexOf(id string) int {
	for i, p := range c.people {
		if p.ID == id {
			return i
		}
	}
	return -1
}
