package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
	"github.com/mandelsoft/vfs/pkg/vfs"

	actx "go.hackfix.me/fwblock/app/context"
	ftypes "go.hackfix.me/fwblock/firewall/types"
	"go.hackfix.me/fwblock/notify"
	"go.hackfix.me/fwblock/privilege"
	"go.hackfix.me/fwblock/shell"
)

// Option is a function that allows configuring the application.
type Option func(*App)

// WithContext sets the main context.
func WithContext(ctx context.Context) Option {
	return func(app *App) {
		app.ctx.Ctx = ctx
	}
}

// WithDialogNotifier sets the notifier used when the application is launched
// from the Explorer context menu, where there's no console to report to.
func WithDialogNotifier(n notify.Notifier) Option {
	return func(app *App) {
		app.dialog = n
	}
}

// WithEnv sets the process environment used by the application.
func WithEnv(env actx.Environment) Option {
	return func(app *App) {
		app.ctx.Env = env
	}
}

// WithExecPath sets the path of the executable the context menu invokes.
func WithExecPath(path string) Option {
	return func(app *App) {
		app.ctx.ExecPath = path
	}
}

// WithFDs sets the file descriptors used by the application.
func WithFDs(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(app *App) {
		app.ctx.Stdin = stdin
		app.ctx.Stdout = stdout
		app.ctx.Stderr = stderr
	}
}

// WithFirewall sets the firewall implementation used by the application,
// overriding the one selected in the configuration.
func WithFirewall(fw ftypes.Firewall) Option {
	return func(app *App) {
		app.firewall = fw
	}
}

// WithFS sets the filesystem used by the application.
func WithFS(fs vfs.FileSystem) Option {
	return func(app *App) {
		app.ctx.FS = fs
	}
}

// WithInteractive sets whether the application can prompt the user.
func WithInteractive(interactive bool) Option {
	return func(app *App) {
		app.ctx.Interactive = interactive
	}
}

// WithLogger initializes the logger used by the application.
func WithLogger(_, isStderrTTY bool) Option {
	return func(app *App) {
		lvl := &slog.LevelVar{}
		lvl.Set(slog.LevelInfo)
		logger := slog.New(
			tint.NewHandler(app.ctx.Stderr, &tint.Options{
				Level:      lvl,
				NoColor:    !isStderrTTY,
				TimeFormat: "2006-01-02 15:04:05.000",
			}),
		)
		app.logLevel = lvl
		app.ctx.Logger = logger
		slog.SetDefault(logger)
	}
}

// WithNotifier sets the notifier used to report results to the user.
func WithNotifier(n notify.Notifier) Option {
	return func(app *App) {
		app.ctx.Notifier = n
	}
}

// WithPrivilege sets the checker of administrator privileges.
func WithPrivilege(c privilege.Checker) Option {
	return func(app *App) {
		app.ctx.Privilege = c
	}
}

// WithShellStore sets the store of the context-menu integration, overriding
// the system registry.
func WithShellStore(store shell.Store) Option {
	return func(app *App) {
		app.shellStore = store
	}
}

// WithTimeSource sets the time source used by the application.
func WithTimeSource(ts actx.TimeSource) Option {
	return func(app *App) {
		app.ctx.TimeSource = ts
	}
}
