package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agentstation/formsync/pkg/constants"
)

// Config holds logger configuration options.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error, disabled.
	Level string

	// Format is json, console or auto. Auto picks console on a terminal.
	Format string

	// Output is stderr, stdout, discard, or a file path to append to.
	Output string

	// TimeFormat is the console timestamp layout.
	TimeFormat string

	// NoColor disables color output in console mode.
	NoColor bool

	// AddCaller includes file:line in every entry. Debug and trace
	// levels always include it.
	AddCaller bool

	// Fields are attached to every entry.
	Fields map[string]any
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

// ConfigFromEnv reads LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT on top of the
// defaults. DEBUG=1 turns on debug when LOG_LEVEL is unset.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	} else if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	if output := os.Getenv("LOG_OUTPUT"); output != "" {
		cfg.Output = output
	}
	return cfg
}

// NewLoggerFromConfig builds a logger and sets the global level to match.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	ctx := zerolog.New(cfg.writer()).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	if len(cfg.Fields) > 0 {
		ctx = ctx.Fields(cfg.Fields)
	}
	return ctx.Logger()
}

// Configure replaces the default logger.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

// writer opens the output and wraps it for console rendering when asked.
func (cfg *Config) writer() io.Writer {
	out, terminal := openOutput(cfg.Output)

	switch strings.ToLower(cfg.Format) {
	case "console", "pretty":
	case "", "auto":
		if !terminal {
			return out
		}
	default:
		return out
	}

	layout := cfg.TimeFormat
	if layout == "" {
		layout = time.Kitchen
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: layout, NoColor: cfg.NoColor}
}

// openOutput resolves an output name. A file that cannot be opened falls
// back to stderr.
func openOutput(name string) (w io.Writer, terminal bool) {
	switch strings.ToLower(name) {
	case "stdout":
		return os.Stdout, isTerminal(os.Stdout)
	case "discard", "none":
		return io.Discard, false
	case "", "stderr":
		return os.Stderr, isTerminal(os.Stderr)
	}

	file, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr, isTerminal(os.Stderr)
	}
	return file, false
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// parseLevel parses a level name, defaulting to info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "", "info":
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	case "none", "off":
		return zerolog.Disabled
	}
	if l, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil {
		return l
	}
	return zerolog.InfoLevel
}
