package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/contcal/pkg/config"
	"tableflip.dev/contcal/pkg/logging"
	"tableflip.dev/contcal/pkg/store"
)

var (
	oo         = &base.OutputOptions{}
	configFile string
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "contcal",
		Short: base.Wrap80("A continuous calendar of who is scheduled when, on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default is $HOME/.contcal.yaml).")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addGrid(topLevel)
	addPeople(topLevel)
	addTheme(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// env is what every command needs once configuration is resolved.
type env struct {
	Config      *config.Config
	Logger      *zap.Logger
	Persistence store.Persistence
}

// loadEnv reads the config, applying flag overrides, and opens the store.
func loadEnv(cmd *cobra.Command, overrides map[string]string) (*env, error) {
	v := config.New(configFile)
	for key, flag := range overrides {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			v.Set(key, f.Value.String())
		}
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded config",
		zap.String("file", v.ConfigFileUsed()),
		zap.String("path", cfg.Path),
		zap.String("theme", string(cfg.Theme)),
		zap.String("size", string(cfg.Size)),
	)
	return &env{Config: cfg, Logger: logger, Persistence: p}, nil
}
