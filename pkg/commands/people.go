package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/contcal/pkg/commands/options"
	"tableflip.dev/contcal/pkg/grid"
	"tableflip.dev/contcal/pkg/people"
	"tableflip.dev/contcal/pkg/runner/roster"
	"tableflip.dev/contcal/pkg/snake"
)

// peopleOverrides lets --people point every people subcommand at a file.
var peopleOverrides = map[string]string{"people": "people"}

func addPeople(topLevel *cobra.Command) {
	var peopleFile string

	cmd := &cobra.Command{
		Use:     "people [date]",
		Aliases: []string{"who"},
		Short:   "list who is scheduled",
		Long: base.Wrap80("List the people scheduled on a YYYY-MM-DD date, or every date with a count when no date is given. " +
			"With a people file configured (--people or the people config key) the file is read and edited instead of the store."),
		Example: `
contcal people
contcal people 2025-10-28
contcal people 2025-10-28 --json
contcal people --people rota.yaml
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd, peopleOverrides)
			if err != nil {
				return oo.HandleError(err)
			}
			l := roster.List{
				Persistence: e.Persistence,
				File:        e.Config.People,
				JSON:        oo.JSON,
				Out:         cmd.OutOrStdout(),
			}
			if len(args) == 1 {
				l.Date = args[0]
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}
	base.AddOutputArg(cmd, oo)
	cmd.PersistentFlags().StringVar(&peopleFile, "people", "", "YAML or JSON file of assignments to use instead of the store.")

	addPeopleAdd(cmd)
	addPeopleRemove(cmd)
	addPeopleImport(cmd)
	addPeopleExport(cmd)

	topLevel.AddCommand(cmd)
}

func checkDate(s string) error {
	if _, ok := grid.ParseISO(s); !ok {
		return fmt.Errorf("%w: %q", people.ErrInvalidDate, s)
	}
	return nil
}

func addPeopleAdd(parent *cobra.Command) {
	po := &options.PersonOptions{}
	i := &options.InteractiveOptions{}
	var person people.Person

	cmd := &cobra.Command{
		Use:   "add <date>",
		Short: "schedule someone on a date",
		Example: `
contcal people add 2025-10-28 --name "Ada Lovelace" --role Engineer
contcal people add 2025-10-28 -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one date")
			}
			return checkDate(args[0])
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if i.Interactive {
				var err error
				person, err = snake.AskPerson(i.Prompts(cmd))
				return err
			}
			if strings.TrimSpace(po.Name) == "" {
				return people.ErrMissingName
			}
			person = po.Person()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd, peopleOverrides)
			if err != nil {
				return err
			}
			a := roster.Add{
				Persistence: e.Persistence,
				File:        e.Config.People,
				Logger:      e.Logger,
				Date:        args[0],
				Person:      person,
				Out:         cmd.OutOrStdout(),
			}
			return a.Do(cmd.Context())
		},
	}
	options.AddPersonArgs(cmd, po)
	options.InteractiveArgs(cmd, i)

	parent.AddCommand(cmd)
}

func addPeopleRemove(parent *cobra.Command) {
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "rm <date> <id>",
		Aliases: []string{"remove"},
		Short:   "remove someone from a date",
		Example: `
contcal people rm 2025-10-28 6f1c...
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("expected a date and an id")
			}
			return checkDate(args[0])
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if i.Interactive {
				ok, err := snake.Confirm(i.Prompts(cmd),
					fmt.Sprintf("Remove %s from %s", args[1], args[0]))
				if err != nil || !ok {
					return err
				}
			}
			e, err := loadEnv(cmd, peopleOverrides)
			if err != nil {
				return err
			}
			r := roster.Remove{
				Persistence: e.Persistence,
				File:        e.Config.People,
				Logger:      e.Logger,
				Date:        args[0],
				ID:          args[1],
				Out:         cmd.OutOrStdout(),
			}
			return r.Do(cmd.Context())
		},
	}
	options.InteractiveArgs(cmd, i)

	parent.AddCommand(cmd)
}

func addPeopleImport(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "import assignments from a YAML or JSON file",
		Long: base.Wrap80(`Import a mapping of YYYY-MM-DD dates to lists of people. Entries keep their id, so importing
the same file twice overwrites rather than duplicates.`),
		Example: `
contcal people import rota.yaml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd, nil)
			if err != nil {
				return err
			}
			im := roster.Import{
				Persistence: e.Persistence,
				Logger:      e.Logger,
				File:        args[0],
				Out:         cmd.OutOrStdout(),
			}
			return im.Do(cmd.Context())
		},
	}

	parent.AddCommand(cmd)
}

func addPeopleExport(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "write every assignment as YAML",
		Example: `
contcal people export > rota.yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd, nil)
			if err != nil {
				return err
			}
			ex := roster.Export{Persistence: e.Persistence, Out: cmd.OutOrStdout()}
			return ex.Do(cmd.Context())
		},
	}

	parent.AddCommand(cmd)
}
