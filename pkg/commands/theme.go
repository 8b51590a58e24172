package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/contcal/pkg/prefs"
	"tableflip.dev/contcal/pkg/runner/theme"
)

func addTheme(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "theme [light|dark|toggle]",
		Short: "show or change the stored theme",
		Example: `
contcal theme
contcal theme dark
contcal theme toggle
`,
		ValidArgs: []string{string(prefs.Light), string(prefs.Dark), "toggle"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd, nil)
			if err != nil {
				return err
			}
			th := theme.Theme{
				Store:  e.Persistence,
				Mode:   e.Config.Theme,
				Detect: prefs.TerminalDetector,
				Out:    cmd.OutOrStdout(),
			}
			if len(args) == 1 {
				th.Action = args[0]
			}
			return th.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
