package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/contcal/pkg/people"
	"tableflip.dev/contcal/pkg/tui/app"
)

func addUI(topLevel *cobra.Command) {
	var (
		theme      string
		size       string
		peopleFile string
	)

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the calendar in the terminal",
		Example: `
contcal ui
contcal ui --theme dark --size xl
contcal ui --people ./rota.yaml
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd, map[string]string{
				"theme":  "theme",
				"size":   "size",
				"people": "people",
			})
			if err != nil {
				return err
			}
			defer func() { _ = e.Logger.Sync() }()

			opts := app.Options{
				Persistence: e.Persistence,
				Theme:       e.Config.Theme,
				Size:        e.Config.Size,
				SnackMode:   e.Config.SnackMode,
				Logger:      e.Logger,
				OnClick: func(day, month, year int) {
					e.Logger.Debug("click", zap.Int("day", day), zap.Int("month", month), zap.Int("year", year))
				},
				OnSelectDate: func(iso string, list []people.Person) {
					e.Logger.Info("date selected", zap.String("date", iso), zap.Int("people", len(list)))
				},
			}

			if e.Config.People != "" {
				// A people file is shown read-only instead of the store.
				idx, err := people.LoadFile(e.Config.People)
				if err != nil {
					return err
				}
				opts.Index = idx
				opts.Persistence = nil
				opts.Prefs = e.Persistence
			}
			return app.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "Theme: light, dark or auto.")
	cmd.Flags().StringVar(&size, "size", "", "Cell size: md, lg or xl.")
	cmd.Flags().StringVar(&peopleFile, "people", "", "YAML or JSON file of assignments by date.")

	topLevel.AddCommand(cmd)
}
