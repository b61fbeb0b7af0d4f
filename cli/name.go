package cli

import (
	"fmt"

	actx "go.hackfix.me/fwblock/app/context"
	ftypes "go.hackfix.me/fwblock/firewall/types"
)

// Name generates a rule name for a program.
type Name struct {
	File      string `arg:"" help:"Name or path of the executable file."`
	Direction string `arg:"" help:"Traffic direction: 'in' or 'out'."`
}

// Run the name command.
func (c *Name) Run(appCtx *actx.Context) error {
	dir, err := ftypes.DirectionFromString(c.Direction)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(appCtx.Stdout, appCtx.FwManager.GenerateRuleName(baseName(c.File), dir))

	return err //nolint:wrapcheck // This is fine.
}
