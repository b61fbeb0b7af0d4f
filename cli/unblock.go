package cli

import (
	actx "go.hackfix.me/fwblock/app/context"
	aerrors "go.hackfix.me/fwblock/app/errors"
)

// Unblock removes a firewall rule.
type Unblock struct {
	Name string `arg:"" help:"Name of the rule to remove. All rules with this name are removed."`
}

// Run the unblock command.
func (c *Unblock) Run(appCtx *actx.Context) error {
	if err := appCtx.FwManager.RemoveRule(appCtx.Ctx, c.Name); err != nil {
		return aerrors.NewWithCause("failed removing firewall rule", err, "rule.name", c.Name)
	}

	return nil
}
