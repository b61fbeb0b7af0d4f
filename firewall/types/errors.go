package types

import "fmt"

// InvalidInputError is returned when an operation is called with invalid
// arguments. No firewall command is run in that case.
type InvalidInputError struct {
	Field string
	Msg   string
}

// Error returns a string representation of the error.
func (e *InvalidInputError) Error() string {
	return e.Msg
}

// CommandError is returned when the firewall tool ran but reported a failure,
// or couldn't be run at all.
type CommandError struct {
	Op       string
	ExitCode int
	Output   string
	Err      error
}

// Error returns a string representation of the error.
func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to %s: %s", e.Op, e.Err)
	}
	msg := fmt.Sprintf("failed to %s: command failed with exit code %d", e.Op, e.ExitCode)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

// Unwrap returns the underlying error for error unwrapping.
func (e *CommandError) Unwrap() error {
	return e.Err
}
