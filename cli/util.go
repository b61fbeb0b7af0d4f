package cli

import (
	"errors"
	"fmt"
	"strings"

	actx "go.hackfix.me/fwblock/app/context"
	ftypes "go.hackfix.me/fwblock/firewall/types"
	"go.hackfix.me/fwblock/notify"
)

func notifyUser(appCtx *actx.Context, level notify.Level, title, msg string) {
	if err := appCtx.Notifier.Notify(level, title, msg); err != nil {
		appCtx.Logger.Warn("failed showing notification", "title", title, "error", err)
	}
}

// errorDetail returns the part of a rule operation error that's meaningful to
// the user, i.e. the text netsh printed.
func errorDetail(err error) string {
	var cmdErr *ftypes.CommandError
	if errors.As(err, &cmdErr) {
		switch {
		case cmdErr.Err != nil:
			return cmdErr.Err.Error()
		case cmdErr.Output != "":
			return cmdErr.Output
		default:
			return fmt.Sprintf("command failed with exit code %d", cmdErr.ExitCode)
		}
	}

	return err.Error()
}

// baseName returns the last element of a path with either slash or backslash
// separators.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
