package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/contcal/pkg/people"
)

// PersonOptions
type PersonOptions struct {
	Name   string
	Role   string
	Task   string
	Email  string
	Phone  string
	Notes  string
	Avatar string
}

func AddPersonArgs(cmd *cobra.Command, o *PersonOptions) {
	cmd.Flags().StringVar(&o.Name, "name", "", "Name of the person to schedule.")
	cmd.Flags().StringVar(&o.Role, "role", "", "Role shown under the name.")
	cmd.Flags().StringVar(&o.Task, "task", "", "What they are doing that day.")
	cmd.Flags().StringVar(&o.Email, "email", "", "Contact email.")
	cmd.Flags().StringVar(&o.Phone, "phone", "", "Contact phone.")
	cmd.Flags().StringVar(&o.Notes, "notes", "", "Markdown notes shown in the detail dialog.")
	cmd.Flags().StringVar(&o.Avatar, "avatar", "", "Avatar image URL.")
}

// Person builds a new assignment from the flags.
func (o *PersonOptions) Person() people.Person {
	p := people.New(strings.TrimSpace(o.Name))
	p.Role = strings.TrimSpace(o.Role)
	p.Task = strings.TrimSpace(o.Task)
	p.Email = strings.TrimSpace(o.Email)
	p.Phone = strings.TrimSpace(o.Phone)
	p.Notes = o.Notes
	p.AvatarURL = strings.TrimSpace(o.Avatar)
	return p
}

// Empty reports whether no person flag was given.
func (o *PersonOptions) Empty() bool {
	return *o == PersonOptions{}
}
