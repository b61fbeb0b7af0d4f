package cli

import (
	"fmt"
	"io"

	actx "go.hackfix.me/fwblock/app/context"
	aerrors "go.hackfix.me/fwblock/app/errors"
	"go.hackfix.me/fwblock/firewall/netsh"
)

// List lists firewall rules.
type List struct {
	Program string `help:"Only list the rules that apply to this executable."`
	Table   bool   `help:"Render the rules as a table instead of the verbatim netsh output."`
}

// Run the list command.
func (c *List) Run(appCtx *actx.Context) error {
	var (
		out string
		err error
	)
	if c.Program != "" {
		out, err = appCtx.FwManager.ListRulesForExecutable(appCtx.Ctx, c.Program)
		if err != nil {
			return aerrors.NewWithCause("failed listing firewall rules", err, "rule.program", c.Program)
		}
	} else {
		// The table needs the program of each rule, which only the verbose
		// listing has.
		if c.Table {
			out, err = appCtx.FwManager.ListAllRulesVerbose(appCtx.Ctx)
		} else {
			out, err = appCtx.FwManager.ListAllRules(appCtx.Ctx)
		}
		if err != nil {
			return aerrors.NewWithCause("failed listing firewall rules", err)
		}
	}

	if !c.Table {
		_, err = io.WriteString(appCtx.Stdout, out)
		return err //nolint:wrapcheck // This is fine.
	}

	rules := netsh.ParseRules(out)
	if len(rules) == 0 {
		return nil
	}

	if err = renderRules(rules, appCtx.Stdout); err != nil {
		return fmt.Errorf("failed rendering table: %w", err)
	}

	return nil
}
