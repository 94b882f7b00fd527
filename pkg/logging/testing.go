package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger records JSON log entries so tests can assert on them.
type TestLogger struct {
	*zerolog.Logger

	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer. It is safe for concurrent use.
func (tl *TestLogger) Write(p []byte) (int, error) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.buf.Write(p)
}

// NewTestLogger returns a trace-level logger writing into memory. The
// global level is lowered for the duration of the test.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	previous := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(previous) })

	tl := &TestLogger{}
	logger := zerolog.New(tl).Level(zerolog.TraceLevel).With().Timestamp().Logger()
	tl.Logger = &logger
	return tl
}

// Output returns everything logged so far.
func (tl *TestLogger) Output() string {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.buf.String()
}

// Lines returns one string per entry.
func (tl *TestLogger) Lines() []string {
	out := strings.TrimSpace(tl.Output())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Entries decodes every entry. Lines that are not JSON are skipped.
func (tl *TestLogger) Entries() []map[string]any {
	var entries []map[string]any
	for _, line := range tl.Lines() {
		var entry map[string]any
		if json.Unmarshal([]byte(line), &entry) == nil {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Contains reports whether any entry contains substr.
func (tl *TestLogger) Contains(substr string) bool {
	return strings.Contains(tl.Output(), substr)
}

// AssertContains fails the test when substr was not logged.
func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if !tl.Contains(substr) {
		t.Errorf("log output does not contain %q\noutput:\n%s", substr, tl.Output())
	}
}

// AssertNotContains fails the test when substr was logged.
func (tl *TestLogger) AssertNotContains(t testing.TB, substr string) {
	t.Helper()
	if tl.Contains(substr) {
		t.Errorf("log output should not contain %q\noutput:\n%s", substr, tl.Output())
	}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
