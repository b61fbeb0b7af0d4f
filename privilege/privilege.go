// Package privilege checks whether the process runs with administrator
// privileges.
package privilege

import "log/slog"

// Checker checks the privilege level of the current process.
type Checker interface {
	IsAdministrator() (bool, error)
}

// System is the Checker of the running operating system.
type System struct{}

var _ Checker = System{}

// IsRunningAsAdministrator reports whether the process runs with
// administrator privileges. A failed check is reported as not privileged.
func IsRunningAsAdministrator(c Checker, logger *slog.Logger) bool {
	ok, err := c.IsAdministrator()
	if err != nil {
		logger.Warn("failed checking administrator privileges", "error", err)
		return false
	}
	return ok
}
