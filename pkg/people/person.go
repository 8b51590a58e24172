// Package people holds the assignments shown as badges on calendar days.
package people

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	// ErrInvalidDate is returned when a key is not a YYYY-MM-DD date.
	ErrInvalidDate = errors.New("people: invalid ISO date")
	// ErrMissingName is returned for assignments without a name.
	ErrMissingName = errors.New("people: name is required")
)

// Person is someone assigned to a calendar day.
type Person struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Role      string    `json:"role,omitempty" yaml:"role,omitempty"`
	Task      string    `json:"task,omitempty" yaml:"task,omitempty"`
	Email     string    `json:"email,omitempty" yaml:"email,omitempty"`
	Phone     string    `json:"phone,omitempty" yaml:"phone,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty" yaml:"avatarUrl,omitempty"`
	Notes     string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	Created   time.Time `json:"created,omitempty" yaml:"-"`
}

// New returns a Person with a fresh ID.
func New(name string) Person {
	return Person{ID: uuid.NewString(), Name: name, Created: time.Now()}
}

// EnsureID assigns a random ID when none is set.
func (p *Person) EnsureID() {
	if strings.TrimSpace(p.ID) == "" {
		p.ID = uuid.NewString()
	}
}

// Validate checks the fields required for display.
func (p Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrMissingName
	}
	return nil
}

// Initials returns up to two upper-cased initials for avatar placeholders.
func (p Person) Initials() string {
	var b strings.Builder
	for i, part := range strings.Fields(p.Name) {
		if i == 2 {
			break
		}
		r, _ := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// RoleOrDash returns the role, or an em dash placeholder.
func (p Person) RoleOrDash() string {
	return OrDash(p.Role)
}

// OrDash substitutes the placeholder used for empty detail fields.
func OrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "—"
	}
	return v
}
