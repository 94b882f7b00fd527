package alerts

import (
	"fmt"

	"github.com/agentstation/formsync/internal/cmd/emoji"
	"github.com/agentstation/formsync/pkg/actions"
)

// Level is the severity of an alert.
type Level int

// Alert levels, most severe first.
const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
	LevelSuccess
)

const ansiReset = "\033[0m"

// style is how a level is shown on a terminal.
type style struct {
	name  string
	icon  string
	color string
}

var styles = map[Level]style{
	LevelError:   {"error", emoji.Error, "\033[31m"},
	LevelWarning: {"warning", emoji.Warning, "\033[33m"},
	LevelInfo:    {"info", emoji.Info, "\033[36m"},
	LevelSuccess: {"success", emoji.Success, "\033[32m"},
}

// String returns the lower-case level name.
func (l Level) String() string {
	if s, ok := styles[l]; ok {
		return s.name
	}
	return fmt.Sprintf("unknown(%d)", l)
}

// Icon returns the status symbol of the level.
func (l Level) Icon() string {
	if s, ok := styles[l]; ok {
		return s.icon
	}
	return "?"
}

// colorize wraps text in the ANSI color of the level.
func (l Level) colorize(text string) string {
	s, ok := styles[l]
	if !ok {
		return text
	}
	return s.color + text + ansiReset
}

// levelOf maps the notification level of a directive.
func levelOf(level string) Level {
	switch level {
	case actions.LevelSuccess:
		return LevelSuccess
	case actions.LevelWarning:
		return LevelWarning
	case actions.LevelDanger:
		return LevelError
	default:
		return LevelInfo
	}
}
