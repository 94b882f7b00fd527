package serve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/formsync/internal/cmd/application"
	"github.com/agentstation/formsync/pkg/constants"
)

func TestConfigFromFlags(t *testing.T) {
	app := &application.Mock{
		ServerAddrFunc: func() string { return "127.0.0.1:9999" },
	}

	t.Run("defaults", func(t *testing.T) {
		cmd := NewCommand(app)
		require.NoError(t, cmd.ParseFlags(nil))

		cfg := configFromFlags(cmd, app)
		assert.Equal(t, "127.0.0.1:9999", cfg.Addr)
		assert.Equal(t, constants.APIPathPrefix, cfg.PathPrefix)
		assert.Equal(t, constants.ServerReadTimeout, cfg.ReadTimeout)
		assert.Equal(t, constants.ShutdownTimeout, cfg.ShutdownTimeout)
		assert.Equal(t, constants.WizardSessionTTL, cfg.SessionTTL)
	})

	t.Run("flags win", func(t *testing.T) {
		cmd := NewCommand(app)
		require.NoError(t, cmd.ParseFlags([]string{"--addr", ":7000", "--prefix", "/v2", "--write-timeout", "3s", "--session-ttl", "1m"}))

		cfg := configFromFlags(cmd, app)
		assert.Equal(t, ":7000", cfg.Addr)
		assert.Equal(t, "/v2", cfg.PathPrefix)
		assert.Equal(t, 3*time.Second, cfg.WriteTimeout)
		assert.Equal(t, time.Minute, cfg.SessionTTL)
	})
}
