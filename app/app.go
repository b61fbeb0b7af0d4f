package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/mandelsoft/vfs/pkg/memoryfs"

	"go.hackfix.me/fwblock/app/config"
	actx "go.hackfix.me/fwblock/app/context"
	aerrors "go.hackfix.me/fwblock/app/errors"
	"go.hackfix.me/fwblock/cli"
	"go.hackfix.me/fwblock/firewall"
	ftypes "go.hackfix.me/fwblock/firewall/types"
	"go.hackfix.me/fwblock/notify"
	"go.hackfix.me/fwblock/privilege"
	"go.hackfix.me/fwblock/shell"
)

// App is the application.
type App struct {
	name string
	ctx  *actx.Context
	cli  *cli.CLI
	// the logging level is set via the CLI, if the app was initialized with the
	// WithLogger option.
	logLevel *slog.LevelVar

	// OS boundaries overridden by options. If nil, the system implementations
	// are used.
	firewall   ftypes.Firewall
	shellStore shell.Store

	// notifier reports results of commands run from a terminal, and dialog
	// those of commands run from the context menu.
	notifier notify.Notifier
	dialog   notify.Notifier
}

// New initializes a new application.
func New(name, configFilePath string, opts ...Option) (*App, error) {
	version, err := actx.GetVersion()
	if err != nil {
		return nil, err
	}

	defaultCtx := &actx.Context{
		Ctx:       context.Background(),
		FS:        memoryfs.New(),
		Logger:    slog.Default(),
		Privilege: privilege.System{},
		Stdin:     strings.NewReader(""),
		Stdout:    io.Discard,
		Stderr:    io.Discard,
		Version:   version,
	}
	app := &App{name: name, ctx: defaultCtx}

	for _, opt := range opts {
		opt(app)
	}

	if app.ctx.Notifier == nil {
		app.ctx.Notifier = notify.NewConsole(app.ctx.Stderr)
	}
	app.notifier = app.ctx.Notifier

	ver := fmt.Sprintf("%s %s", app.name, app.ctx.Version.String())
	app.cli, err = cli.New(app.ctx, configFilePath, ver)
	if err != nil {
		return nil, err
	}

	return app, nil
}

// Run initializes the application environment and starts execution of the
// application. If the arguments have the shape of a context-menu invocation,
// a rule blocking the given file is created, and the result is reported with
// the dialog notifier.
func (app *App) Run(args []string) error {
	app.ctx.Notifier = app.notifier
	if app.isContextMenuCall(args) {
		app.ctx.Logger.Debug("running from context menu", "path", args[0])
		args = cli.ContextMenuArgs(args[0], args[1:]...)
		if app.dialog != nil {
			app.ctx.Notifier = app.dialog
		}
	}

	if err := app.cli.Parse(args); err != nil {
		return err
	}

	if app.logLevel != nil {
		app.logLevel.Set(app.cli.Log.Level)
		slog.SetLogLoggerLevel(app.cli.Log.Level)
	}

	if err := app.setup(); err != nil {
		return err
	}

	if err := app.cli.Execute(app.ctx); err != nil {
		return err
	}

	return nil
}

// setup loads the configuration and initializes the firewall manager and the
// shell integration.
func (app *App) setup() error {
	cfg := config.NewConfig(app.ctx.FS, app.cli.ConfigFile)
	if err := cfg.Load(); err != nil {
		return aerrors.NewWithCause("failed loading configuration", err, "config.path", cfg.Path())
	}
	cfg.SetDefaults()
	app.ctx.Config = cfg

	fw := app.firewall
	if fw == nil {
		var err error
		fw, err = firewall.Setup(cfg.Firewall.Type.V, cfg.Firewall.Tool.V, app.getenv, app.ctx.Logger)
		if err != nil {
			return aerrors.NewWithCause("failed setting up firewall", err, "firewall.type", cfg.Firewall.Type.V)
		}
	}

	fwMgr, err := firewall.NewManager(fw,
		firewall.WithFS(app.ctx.FS),
		firewall.WithLogger(app.ctx.Logger),
		firewall.WithNoMatchMarker(cfg.Firewall.NoMatchMarker.V),
		firewall.WithTimeNow(app.timeNow),
	)
	if err != nil {
		return err //nolint:wrapcheck // This is fine.
	}
	app.ctx.FwManager = fwMgr

	store := app.shellStore
	if store == nil {
		store = shell.NewRegistry()
	}
	app.ctx.Shell, err = shell.NewIntegration(store,
		shell.WithAdminCheck(app.ctx.IsAdmin),
		shell.WithKeys(cfg.Shell.ClassKey.V, cfg.Shell.VerbKey.V, cfg.Shell.MenuLabel.V),
		shell.WithLogger(app.ctx.Logger),
	)
	if err != nil {
		return err //nolint:wrapcheck // This is fine.
	}

	return nil
}

// isContextMenuCall reports whether args are those the context-menu verbs pass:
// an existing file, optionally followed by a direction. A file that no longer
// exists is still recognized when it's followed by a direction and isn't a
// command name, so that the failure is reported to the user.
func (app *App) isContextMenuCall(args []string) bool {
	if len(args) == 0 || args[0] == "" || strings.HasPrefix(args[0], "-") {
		return false
	}
	if app.isFile(args[0]) {
		return true
	}
	if len(args) != 2 || app.cli.IsCommand(args[0]) {
		return false
	}
	_, err := ftypes.DirectionFromString(args[1])

	return err == nil
}

func (app *App) isFile(path string) bool {
	if path == "" || strings.HasPrefix(path, "-") {
		return false
	}
	fi, err := app.ctx.FS.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

func (app *App) getenv(key string) string {
	if app.ctx.Env == nil {
		return ""
	}
	return app.ctx.Env.Get(key)
}

func (app *App) timeNow() time.Time {
	if app.ctx.TimeSource == nil {
		return time.Now()
	}
	return app.ctx.TimeSource.Now()
}
