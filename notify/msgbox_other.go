//go:build !windows

package notify

import "io"

// Default returns the notifier for the current session.
func Default(w io.Writer, _ bool) Notifier {
	return NewConsole(w)
}

// Dialog returns the notifier for results of context-menu invocations.
func Dialog(w io.Writer) Notifier {
	return NewConsole(w)
}
