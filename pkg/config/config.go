// Package config loads contcal settings from .contcal.yaml and CONTCAL_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/contcal/pkg/prefs"
	"tableflip.dev/contcal/pkg/snack"
)

// Size scales the calendar cells.
type Size string

const (
	SizeMD Size = "md"
	SizeLG Size = "lg"
	SizeXL Size = "xl"
)

// ErrUnknownSize is returned for sizes other than md, lg or xl.
var ErrUnknownSize = errors.New("config: unknown size")

// ParseSize validates a size name; empty means lg.
func ParseSize(s string) (Size, error) {
	switch v := Size(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return SizeLG, nil
	case SizeMD, SizeLG, SizeXL:
		return v, nil
	}
	return SizeLG, fmt.Errorf("%w: %q", ErrUnknownSize, s)
}

// Config is the resolved configuration.
type Config struct {
	Path      string
	People    string
	Theme     prefs.Mode
	Size      Size
	SnackMode snack.Mode
	LogFile   string
	LogLevel  string
}

// BasePath returns the storage directory.
func (c *Config) BasePath() string { return c.Path }

// New returns a viper instance with defaults, search paths and environment
// binding applied. Callers may bind flags before calling Load.
func New(configFile string) *viper.Viper {
	v := viper.New()
	v.SetDefault("path", "~/.contcal.db")
	v.SetDefault("people", "")
	v.SetDefault("theme", string(prefs.Auto))
	v.SetDefault("size", string(SizeLG))
	v.SetDefault("snack.mode", "stacked")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("CONTCAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		return v
	}

	v.SetConfigName(".contcal") // .yaml is implicit
	if override := os.Getenv("CONTCAL_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath("./")
	return v
}

// Load reads the config file, if any, and validates every value.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}
	peopleFile, err := homedir.Expand(v.GetString("people"))
	if err != nil {
		return nil, fmt.Errorf("config: expand people: %w", err)
	}
	theme, err := prefs.ParseMode(v.GetString("theme"))
	if err != nil {
		return nil, err
	}
	size, err := ParseSize(v.GetString("size"))
	if err != nil {
		return nil, err
	}
	mode, err := snack.ParseMode(v.GetString("snack.mode"))
	if err != nil {
		return nil, err
	}
	logFile, err := homedir.Expand(v.GetString("log.file"))
	if err != nil {
		return nil, fmt.Errorf("config: expand log file: %w", err)
	}

	return &Config{
		Path:      path,
		People:    peopleFile,
		Theme:     theme,
		Size:      size,
		SnackMode: mode,
		LogFile:   logFile,
		LogLevel:  v.GetString("log.level"),
	}, nil
}
