package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"go.hackfix.me/fwblock/app"
	actx "go.hackfix.me/fwblock/app/context"
	aerrors "go.hackfix.me/fwblock/app/errors"
	"go.hackfix.me/fwblock/notify"
)

func main() {
	var (
		isStdinTTY  = isatty.IsTerminal(os.Stdin.Fd())
		isStdoutTTY = isatty.IsTerminal(os.Stdout.Fd())
		isStderrTTY = isatty.IsTerminal(os.Stderr.Fd())
		stderr      = colorable.NewColorable(os.Stderr)
	)

	configFilePath := filepath.Join(xdg.ConfigHome, "fwblock", "config.json")

	execPath, err := os.Executable()
	if err != nil {
		aerrors.Log(aerrors.NewWithCause("failed resolving executable path", err))
		os.Exit(1)
	}

	a, err := app.New("fwblock", configFilePath,
		app.WithTimeSource(osTime{}),
		app.WithEnv(osEnv{}),
		app.WithFDs(
			os.Stdin,
			colorable.NewColorable(os.Stdout),
			stderr,
		),
		app.WithFS(osfs.New()),
		app.WithLogger(isStdoutTTY, isStderrTTY),
		app.WithExecPath(execPath),
		app.WithInteractive(isStdinTTY && isStdoutTTY),
		app.WithNotifier(notify.Default(stderr, isStdoutTTY || isStderrTTY)),
		app.WithDialogNotifier(notify.Dialog(stderr)),
	)
	if err != nil {
		aerrors.Log(err)
		os.Exit(1)
	}
	if err = a.Run(os.Args[1:]); err != nil {
		aerrors.Log(err)
		os.Exit(1)
	}
}

type osEnv struct{}

var _ actx.Environment = &osEnv{}

func (e osEnv) Get(key string) string {
	return os.Getenv(key)
}

type osTime struct{}

var _ actx.TimeSource = &osTime{}

func (osTime) Now() time.Time {
	return time.Now()
}
