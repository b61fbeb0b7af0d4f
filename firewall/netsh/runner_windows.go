//go:build windows

package netsh

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// configureCmd hides the console window of the child process, which would
// otherwise flash when invoked from Explorer, and passes netsh a command line
// with key="value" quoting instead of the default per-argument quoting.
func configureCmd(cmd *exec.Cmd, name string, args []string) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
		CmdLine:       composeCmdLine(name, args),
	}
}
