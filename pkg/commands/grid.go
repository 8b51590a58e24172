package commands

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/contcal/pkg/commands/options"
	"tableflip.dev/contcal/pkg/nav"
	"tableflip.dev/contcal/pkg/runner/month"
	"tableflip.dev/contcal/pkg/snake"
	"tableflip.dev/contcal/pkg/tui/app"
)

func addGrid(topLevel *cobra.Command) {
	i := &options.InteractiveOptions{}
	var wholeYear bool
	state := nav.New()

	cmd := &cobra.Command{
		Use:     "grid [month] [year]",
		Aliases: []string{"month", "cal"},
		Short:   "print a month of the calendar",
		Long: base.Wrap80(`Print the six week grid for a month, marking days that have people
scheduled with a count. Month may be a number or a name; without arguments the current month is shown.`),
		Example: `
contcal grid
contcal grid 10 2025
contcal grid oct
contcal grid 2025-10 --json
contcal grid --year 2026
contcal grid -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if i.Interactive || len(args) == 0 {
				return nil
			}
			if len(args) == 1 && wholeYear {
				if y, err := strconv.Atoi(args[0]); err == nil && y > 12 {
					state.SetYear(y)
					return nil
				}
			}
			m, y, err := app.ParseJump(strings.Join(args, " "), state.Year())
			if err != nil {
				return err
			}
			state.Jump(m, y)
			return nil
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !i.Interactive {
				return nil
			}
			t := i.Prompts(cmd)
			m := state.Month()
			if !wholeYear {
				var err error
				if m, err = snake.PickMonth(t, m); err != nil {
					return err
				}
			}
			y, err := snake.AskYear(t, state.Year())
			if err != nil {
				return err
			}
			state.Jump(m, y)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd, nil)
			if err != nil {
				return oo.HandleError(err)
			}
			g := month.Month{
				Persistence: e.Persistence,
				Nav:         state,
				WholeYear:   wholeYear,
				JSON:        oo.JSON,
				Now:         time.Now,
				Out:         cmd.OutOrStdout(),
			}
			return oo.HandleError(g.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&wholeYear, "year", false, "Print all twelve months of the year.")
	options.InteractiveArgs(cmd, i)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
