package cli

import (
	"fmt"

	actx "go.hackfix.me/fwblock/app/context"
)

// Exists checks whether a firewall rule exists.
type Exists struct {
	Name string `arg:"" help:"Name of the rule."`
}

// Run the exists command.
func (c *Exists) Run(appCtx *actx.Context) error {
	_, err := fmt.Fprintln(appCtx.Stdout, appCtx.FwManager.RuleExists(appCtx.Ctx, c.Name))
	return err //nolint:wrapcheck // This is fine.
}
