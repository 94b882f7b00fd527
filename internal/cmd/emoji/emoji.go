// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all commands.
package emoji

// Symbol constants for status indicators and user feedback in terminal output.
const (
	// Success represents successful completion of an operation.
	// Used for: completed imports, passing connection tests.
	Success = "✓"

	// Error represents failures.
	// Used for: failed imports, rejected keys, unreachable APIs.
	Error = "✗"

	// Warning represents non-critical issues.
	// Used for: dry runs, repeated question texts.
	Warning = "!"

	// Info represents informational messages.
	Info = "i"

	// Arrow points at where to go next.
	Arrow = "→"
)
