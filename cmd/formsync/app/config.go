package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/formsync/pkg/constants"
	"github.com/agentstation/formsync/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by formsync.
const EnvPrefix = "FORMSYNC"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	Format  string

	// Config file
	ConfigFile string

	// FormBuilder API
	APIURL  string
	APIKey  string
	Timeout time.Duration

	// Local storage
	DBPath string

	// HTTP server
	ServerAddr string

	// Logging configuration. LogLevel comes from --log-level and wins over
	// -v/-q; EnvLogLevel comes from LOG_LEVEL and loses to them.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. Environment variables (FORMSYNC_API_URL, FORMSYNC_API_KEY, ...)
//  3. .env.local, then .env
//  4. Config file (configFile, or ~/.formsync.yaml)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// .env files never override variables already set; the first file
	// loaded wins, so .env.local goes first
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_url", constants.DefaultAPIURL)
	v.SetDefault("timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("db", constants.DefaultDBPath)
	v.SetDefault("addr", constants.DefaultServerAddr)
	v.SetDefault("format", "")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".formsync")

		// A missing default config file is fine
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "cannot read config file", err)
		}
	}

	config := &Config{
		Verbose:     v.GetBool("verbose"),
		Quiet:       v.GetBool("quiet"),
		Format:      v.GetString("format"),
		ConfigFile:  v.ConfigFileUsed(),
		APIURL:      v.GetString("api_url"),
		APIKey:      v.GetString("api_key"),
		Timeout:     v.GetDuration("timeout"),
		DBPath:      expandHome(v.GetString("db")),
		ServerAddr:  v.GetString("addr"),
		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.Timeout <= 0 {
		return nil, errors.NewConfigError("timeout", "must be a positive duration", nil)
	}

	return config, nil
}

// UpdateFromFlags updates config values from flags the user set.
// This should be called after cobra parses flags so that flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(flags *pflag.FlagSet) {
	if flags.Changed("verbose") {
		c.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("quiet") {
		c.Quiet, _ = flags.GetBool("quiet")
	}
	if flags.Changed("format") {
		c.Format, _ = flags.GetString("format")
	}
	if flags.Changed("log-level") {
		c.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("db") {
		db, _ := flags.GetString("db")
		c.DBPath = expandHome(db)
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
