package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	actx "go.hackfix.me/fwblock/app/context"
	aerrors "go.hackfix.me/fwblock/app/errors"
	"go.hackfix.me/fwblock/notify"
)

const (
	actionInstall   = "install"
	actionUninstall = "uninstall"
	actionQuit      = "quit"
)

// Menu shows the installation status of the context menu and, on an
// interactive terminal, lets the user install or uninstall it.
type Menu struct {
	// selectAction prompts for the next action. It defaults to a huh form.
	selectAction func(*actx.Context) (string, error)
}

// Run the menu command.
func (c *Menu) Run(appCtx *actx.Context) error {
	selectFn := c.selectAction
	if selectFn == nil {
		selectFn = selectAction
	}

	for {
		if err := printStatus(appCtx.Stdout, appCtx); err != nil {
			return err
		}
		if !appCtx.Interactive {
			return nil
		}

		action, err := selectFn(appCtx)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("failed running the installer menu: %w", err)
		}

		if !runAction(appCtx, action) {
			return nil
		}
		if _, err = fmt.Fprintln(appCtx.Stdout); err != nil {
			return err //nolint:wrapcheck // This is fine.
		}
	}
}

// runAction performs the chosen menu action and notifies the user of its
// result. It returns false if the user chose to quit.
func runAction(appCtx *actx.Context, action string) bool {
	var err error
	switch action {
	case actionInstall:
		err = install(appCtx)
	case actionUninstall:
		err = uninstall(appCtx)
	default:
		return false
	}

	if err != nil {
		notifyUser(appCtx, notify.LevelError, "Error", aerrors.Message(err))
	} else {
		notifyUser(appCtx, notify.LevelInfo, "Success",
			fmt.Sprintf("Context menu %sed successfully.", action))
	}

	return true
}

func selectAction(appCtx *actx.Context) (string, error) {
	var action string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an option").
				Options(
					huh.NewOption("Install context menu", actionInstall),
					huh.NewOption("Uninstall context menu", actionUninstall),
					huh.NewOption("Quit", actionQuit),
				).
				Value(&action),
		),
	).WithInput(appCtx.Stdin).WithOutput(appCtx.Stdout)

	if err := form.RunWithContext(appCtx.Ctx); err != nil {
		return "", err //nolint:wrapcheck // This is wrapped by the caller.
	}

	return action, nil
}
