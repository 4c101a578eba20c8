// Package logx builds the diagnostic logger. Diagnostics go to stderr and
// never mix with the progress lines commands print on stdout.
package logx

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// EnvLevel overrides the level when no flag sets it.
const EnvLevel = "BIBSORT_LOG_LEVEL"

// Config selects level and destination.
type Config struct {
	Level   string
	Verbose bool
	NoColor bool
	Out     io.Writer
}

// New returns a console logger for cfg.
// Precedence: Level, then Verbose (debug), then EnvLevel, then warn.
func New(cfg Config) zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	w := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    cfg.NoColor || os.Getenv("NO_COLOR") != "",
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
	}
	return zerolog.New(w).Level(ResolveLevel(cfg))
}

// ResolveLevel applies the precedence rules without building a logger.
func ResolveLevel(cfg Config) zerolog.Level {
	if cfg.Level != "" {
		return parseLevel(cfg.Level)
	}
	if cfg.Verbose {
		return zerolog.DebugLevel
	}
	if env := os.Getenv(EnvLevel); env != "" {
		return parseLevel(env)
	}
	return zerolog.WarnLevel
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "warning":
		return zerolog.WarnLevel
	case "none", "off":
		return zerolog.Disabled
	}
	if l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil && l != zerolog.NoLevel {
		return l
	}
	return zerolog.WarnLevel
}
