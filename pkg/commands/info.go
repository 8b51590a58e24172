package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/contcal/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the config and where assignments are stored.",
		Example: `
contcal info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd, nil)
			if err != nil {
				return err
			}
			s := info.Info{
				Config:      e.Config,
				ConfigFile:  configFile,
				Persistence: e.Persistence,
				Out:         cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
