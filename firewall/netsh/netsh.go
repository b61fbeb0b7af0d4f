// Package netsh implements the firewall interface on top of the Windows
// 'netsh advfirewall firewall' command.
package netsh

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	ftypes "go.hackfix.me/fwblock/firewall/types"
)

// DefaultTool returns the path of the netsh executable. The absolute path in
// the system directory is preferred over a PATH lookup.
func DefaultTool(getenv func(string) string) string {
	if root := getenv("SystemRoot"); root != "" {
		return filepath.Join(root, "System32", "netsh.exe")
	}
	return "netsh"
}

// Netsh manages Windows Firewall rules by running netsh.
type Netsh struct {
	runner Runner
	tool   string
	logger *slog.Logger
}

var _ ftypes.Firewall = (*Netsh)(nil)

// New returns a new Netsh instance that runs tool with runner.
func New(runner Runner, tool string, logger *slog.Logger) *Netsh {
	return &Netsh{
		runner: runner,
		tool:   tool,
		logger: logger.With("type", "netsh"),
	}
}

// AddBlockRule implements the ftypes.Firewall interface.
func (n *Netsh) AddBlockRule(ctx context.Context, rule ftypes.Rule) (*ftypes.Result, error) {
	return n.run(ctx,
		"add", "rule",
		"name="+rule.Name,
		"dir="+string(rule.Direction),
		"program="+rule.Program,
		"action=block",
		"enable=yes",
	)
}

// DeleteRule implements the ftypes.Firewall interface.
func (n *Netsh) DeleteRule(ctx context.Context, name string) (*ftypes.Result, error) {
	return n.run(ctx, "delete", "rule", "name="+name)
}

// ShowRules implements the ftypes.Firewall interface. netsh can't filter by
// program, so in that case all rules are listed verbosely and filtered here.
func (n *Netsh) ShowRules(ctx context.Context, filter ftypes.Filter) (*ftypes.Result, error) {
	name := filter.Name
	if name == "" {
		name = "all"
	}

	if filter.Program == "" {
		if filter.Verbose {
			return n.run(ctx, "show", "rule", "name="+name, "verbose")
		}
		return n.run(ctx, "show", "rule", "name="+name)
	}

	res, err := n.run(ctx, "show", "rule", "name="+name, "verbose")
	if err != nil || !res.Success {
		return res, err
	}
	res.Output = FilterByProgram(res.Output, filter.Program)

	return res, nil
}

func (n *Netsh) run(ctx context.Context, args ...string) (*ftypes.Result, error) {
	for _, arg := range args {
		if err := checkArg(arg); err != nil {
			return nil, err
		}
	}

	args = append([]string{"advfirewall", "firewall"}, args...)
	logger := n.logger.With("tool", n.tool, "args", args)
	logger.Debug("running command")

	out, err := n.runner.Run(ctx, n.tool, args...)
	if err != nil {
		return nil, fmt.Errorf("failed running %s: %w", n.tool, err)
	}

	logger.Debug("command finished", "exit_code", out.ExitCode)

	return &ftypes.Result{
		Success:  out.ExitCode == 0,
		ExitCode: out.ExitCode,
		Output:   out.Stdout,
		Stderr:   out.Stderr,
	}, nil
}
