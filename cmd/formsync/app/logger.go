package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/formsync/pkg/logging"
)

// NewLogger builds the CLI logger from config. The level comes from, in
// order: --log-level, -v or -q (quiet wins when both are set), LOG_LEVEL,
// then info.
func NewLogger(config *Config) zerolog.Logger {
	cfg := logging.DefaultConfig()
	cfg.Level = determineLogLevel(config)
	if config.LogFormat != "" {
		cfg.Format = config.LogFormat
	}
	if config.LogOutput != "" {
		cfg.Output = config.LogOutput
	}
	return logging.NewLoggerFromConfig(cfg)
}

func determineLogLevel(config *Config) string {
	switch {
	case config.LogLevel != "":
		return knownLevel(config.LogLevel)
	case config.Verbose && config.Quiet:
		fmt.Fprintln(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet")
		return zerolog.WarnLevel.String()
	case config.Quiet:
		return zerolog.WarnLevel.String()
	case config.Verbose:
		return zerolog.DebugLevel.String()
	case config.EnvLogLevel != "":
		return knownLevel(config.EnvLogLevel)
	}
	return zerolog.InfoLevel.String()
}

// knownLevel returns level when it names trace through error, and info
// with a warning otherwise.
func knownLevel(level string) string {
	if l, err := zerolog.ParseLevel(level); err == nil && l >= zerolog.TraceLevel && l <= zerolog.ErrorLevel && level != "" {
		return level
	}
	fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using \"info\"\n", level)
	return zerolog.InfoLevel.String()
}
