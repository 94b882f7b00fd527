package version_test

import (
	"bytes"
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/formsync/cmd/formsync/cmd/version"
	"github.com/agentstation/formsync/internal/cmd/application"
)

func TestVersion(t *testing.T) {
	app := &application.Mock{
		VersionFunc:      func() string { return "1.2.3" },
		CommitFunc:       func() string { return "abc123" },
		OutputFormatFunc: func() string { return "" },
	}

	cmd := version.NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "formsync version 1.2.3")
	assert.Contains(t, out.String(), "commit: abc123")
	assert.Contains(t, out.String(), "built by: unknown")
	assert.Contains(t, out.String(), "platform: "+runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersionJSON(t *testing.T) {
	app := &application.Mock{
		VersionFunc:      func() string { return "1.2.3" },
		OutputFormatFunc: func() string { return "json" },
	}

	cmd := version.NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	var info version.Info
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}
