//go:build windows

package notify

import (
	"fmt"
	"io"

	"golang.org/x/sys/windows"
)

// MessageBox shows notifications in a modal Windows message box.
type MessageBox struct{}

var _ Notifier = MessageBox{}

// Notify implements the Notifier interface.
func (MessageBox) Notify(level Level, title, msg string) error {
	text, err := windows.UTF16PtrFromString(msg)
	if err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}
	caption, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return fmt.Errorf("invalid title: %w", err)
	}

	var icon uint32
	switch level {
	case LevelWarning:
		icon = windows.MB_ICONWARNING
	case LevelError:
		icon = windows.MB_ICONERROR
	default:
		icon = windows.MB_ICONINFORMATION
	}

	if _, err = windows.MessageBox(0, text, caption, windows.MB_OK|icon); err != nil {
		return fmt.Errorf("failed showing message box: %w", err)
	}

	return nil
}

// Default returns the notifier for the current session. Without a console,
// as when launched from the Explorer context menu, messages are shown in a
// message box.
func Default(w io.Writer, console bool) Notifier {
	if console {
		return NewConsole(w)
	}
	return MessageBox{}
}

// Dialog returns the notifier for results of context-menu invocations, which
// is always a message box, since the console Explorer creates for the process
// closes when it exits.
func Dialog(io.Writer) Notifier {
	return MessageBox{}
}
