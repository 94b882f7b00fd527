package server

import (
	"time"

	"github.com/agentstation/formsync/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Addr is the listen address, host:port.
	Addr string

	// API settings
	PathPrefix string

	// HTTP timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// SessionTTL expires wizard sessions left idle this long.
	SessionTTL time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            constants.DefaultServerAddr,
		PathPrefix:      constants.APIPathPrefix,
		ReadTimeout:     constants.ServerReadTimeout,
		WriteTimeout:    constants.ServerWriteTimeout,
		IdleTimeout:     constants.ServerIdleTimeout,
		ShutdownTimeout: constants.ShutdownTimeout,
		SessionTTL:      constants.WizardSessionTTL,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.PathPrefix == "" {
		c.PathPrefix = d.PathPrefix
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = d.SessionTTL
	}
	return c
}
