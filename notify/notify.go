// Package notify shows messages to the user, either on the console or in a
// modal dialog when there's no console to write to.
package notify

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Level is the severity of a notification.
type Level int

// Notification levels.
const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// String returns the name of the level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Notifier shows a message to the user.
type Notifier interface {
	Notify(level Level, title, msg string) error
}

// Console writes notifications to a writer, styled if the writer is a
// terminal.
type Console struct {
	w      io.Writer
	styles map[Level]lipgloss.Style
}

var _ Notifier = (*Console)(nil)

// NewConsole returns a new Console notifier that writes to w.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true)
	return &Console{
		w: w,
		styles: map[Level]lipgloss.Style{
			LevelInfo:    title.Foreground(lipgloss.Color("10")),
			LevelWarning: title.Foreground(lipgloss.Color("11")),
			LevelError:   title.Foreground(lipgloss.Color("9")),
		},
	}
}

// Notify implements the Notifier interface.
func (c *Console) Notify(level Level, title, msg string) error {
	style, ok := c.styles[level]
	if !ok {
		style = c.styles[LevelInfo]
	}

	_, err := fmt.Fprintf(c.w, "%s %s\n", style.Render(title+":"), msg)
	if err != nil {
		return fmt.Errorf("failed writing notification: %w", err)
	}

	return nil
}
