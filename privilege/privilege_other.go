//go:build !windows

package privilege

import "golang.org/x/sys/unix"

// IsAdministrator reports whether the process runs as root.
func (System) IsAdministrator() (bool, error) {
	return unix.Geteuid() == 0, nil
}
