package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/contcal/pkg/snake"
)

// InteractiveOptions switches a command to prompting instead of arguments.
type InteractiveOptions struct {
	Interactive bool
}

func InteractiveArgs(cmd *cobra.Command, o *InteractiveOptions) {
	cmd.Flags().BoolVarP(&o.Interactive, "interactive", "i", false,
		`Prompt for the date, month or person instead of reading arguments.`)
}

// Prompts binds the prompts to the command's streams.
func (o *InteractiveOptions) Prompts(cmd *cobra.Command) snake.IO {
	return snake.IO{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
}
