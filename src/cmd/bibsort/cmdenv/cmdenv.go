// Package cmdenv resolves the settings shared by every subcommand: the
// project config file and the diagnostic logger.
package cmdenv

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"bibsort/src/internal/config"
	"bibsort/src/internal/logx"
)

// Flag names registered on the root command.
const (
	FlagConfig   = "config"
	FlagVerbose  = "verbose"
	FlagLogLevel = "log-level"
)

// AddPersistentFlags registers the shared flags on root.
func AddPersistentFlags(root *cobra.Command) {
	root.PersistentFlags().String(FlagConfig, config.DefaultFile, "Project settings file")
	root.PersistentFlags().BoolP(FlagVerbose, "v", false, "Log diagnostics at debug level")
	root.PersistentFlags().String(FlagLogLevel, "", "Diagnostic log level (trace, debug, info, warn, error, off)")
}

// Load returns the config file and logger for cmd. Flags that were never
// registered (a subcommand run on its own) fall back to defaults. A config
// path given explicitly must exist.
func Load(cmd *cobra.Command) (config.File, zerolog.Logger, error) {
	path := stringFlag(cmd, FlagConfig, config.DefaultFile)
	// false when the flag is not registered
	verbose, _ := cmd.Flags().GetBool(FlagVerbose)
	log := logx.New(logx.Config{
		Level:   stringFlag(cmd, FlagLogLevel, ""),
		Verbose: verbose,
		Out:     cmd.ErrOrStderr(),
	})
	load := config.Load
	if cmd.Flags().Changed(FlagConfig) {
		load = config.Require
	}
	cfg, err := load(path)
	if err != nil {
		return cfg, log, err
	}
	log.Debug().Str("path", path).Msg("config loaded")
	return cfg, log, nil
}

func stringFlag(cmd *cobra.Command, name, def string) string {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return def
}
