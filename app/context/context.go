package context

import (
	"context"
	"io"
	"log/slog"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"go.hackfix.me/fwblock/app/config"
	"go.hackfix.me/fwblock/firewall"
	"go.hackfix.me/fwblock/notify"
	"go.hackfix.me/fwblock/privilege"
	"go.hackfix.me/fwblock/shell"
)

// Context contains common objects used by the application. It is passed around
// the application to avoid direct dependencies on external systems, and make
// testing easier.
type Context struct {
	Ctx        context.Context // global context
	FS         vfs.FileSystem  // filesystem
	Env        Environment     // process environment
	Logger     *slog.Logger    // global logger
	TimeSource TimeSource
	Config     *config.Config

	// OS boundaries
	FwManager *firewall.Manager
	Shell     *shell.Integration
	Privilege privilege.Checker
	Notifier  notify.Notifier

	// Standard streams
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Interactive is true if stdin and stdout are attached to a terminal.
	Interactive bool
	// ExecPath is the absolute path of the running executable, which the
	// context menu is installed to invoke.
	ExecPath string

	// Metadata
	Version *VersionInfo
}

// IsAdmin reports whether the process runs with administrator privileges.
func (c *Context) IsAdmin() bool {
	return privilege.IsRunningAsAdministrator(c.Privilege, c.Logger)
}
