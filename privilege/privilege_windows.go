//go:build windows

package privilege

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// IsAdministrator reports whether the process token is a member of the
// built-in Administrators group. With UAC enabled, this is only the case for
// an elevated process.
func (System) IsAdministrator() (bool, error) {
	sid, err := windows.CreateWellKnownSid(windows.WinBuiltinAdministratorsSid)
	if err != nil {
		return false, fmt.Errorf("failed creating Administrators SID: %w", err)
	}

	// A zero token makes CheckTokenMembership use the impersonation token of
	// the calling thread.
	member, err := windows.Token(0).IsMember(sid)
	if err != nil {
		return false, fmt.Errorf("failed checking token membership: %w", err)
	}

	return member, nil
}
