package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"aeroreduce/internal/config"
)

// loggerFactory builds the process logger from the logging section
type loggerFactory func(config.LoggingConfig) (*slog.Logger, error)

// rootOptions holds the flags shared by every subcommand
type rootOptions struct {
	configPath string
	logLevel   string
	newLogger  loggerFactory
}

func newRootCommand(newLogger loggerFactory) *cobra.Command {
	opts := &rootOptions{newLogger: newLogger}
	root := &cobra.Command{
		Use:           "aeroreduce",
		Short:         "Wind-tunnel airfoil data reduction",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file (default: AERO_CONFIG_FILE or ./aeroreduce.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	root.AddCommand(
		newSweepCommand(opts),
		newServeCommand(opts),
		newTemplateCommand(opts),
		newVersionCommand(),
	)
	return root
}

// load reads the configuration and applies the shared flag overrides
func (o *rootOptions) load() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFrom(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	return cfg, nil
}

func (o *rootOptions) logger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := o.newLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
