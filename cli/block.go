package cli

import (
	"fmt"

	actx "go.hackfix.me/fwblock/app/context"
	aerrors "go.hackfix.me/fwblock/app/errors"
	ftypes "go.hackfix.me/fwblock/firewall/types"
	"go.hackfix.me/fwblock/notify"
)

// Block creates a firewall rule that blocks the traffic of a program.
type Block struct {
	Path      string `arg:"" help:"Path to the executable file."`
	Direction string `arg:"" optional:"" help:"Traffic direction to block: 'in' or 'out'. Default: in."`
	Name      string `help:"Name of the rule. Default: generated from the file name, direction and current time."`
	Notify    bool   `help:"Report the result as a notification instead of printing the rule name."`
}

// Run the block command.
func (c *Block) Run(appCtx *actx.Context) error {
	dirVal := c.Direction
	if dirVal == "" && !c.Notify {
		dirVal = string(ftypes.DirectionIn)
	}

	dir, err := ftypes.DirectionFromString(dirVal)
	if err != nil {
		if c.Notify {
			notifyUser(appCtx, notify.LevelError, "Error", "Invalid direction specified")
		}
		return aerrors.NewWithCause("invalid direction specified", err, "direction", c.Direction)
	}

	name := c.Name
	if name == "" {
		name = appCtx.FwManager.GenerateRuleName(baseName(c.Path), dir)
	}

	err = appCtx.FwManager.CreateBlockRule(appCtx.Ctx, c.Path, dir, name)
	if err != nil {
		if c.Notify {
			notifyUser(appCtx, notify.LevelError, "Error",
				fmt.Sprintf("Error creating firewall rule: %s", errorDetail(err)))
		}
		return aerrors.NewWithCause("failed creating firewall rule", err,
			"rule.name", name, "rule.program", c.Path, "rule.direction", dir)
	}

	if c.Notify {
		notifyUser(appCtx, notify.LevelInfo, "Success",
			fmt.Sprintf("Successfully blocked %s connections for %s", dir.Long(), baseName(c.Path)))
		return nil
	}

	_, err = fmt.Fprintln(appCtx.Stdout, name)

	return err //nolint:wrapcheck // This is fine.
}
