package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	actx "go.hackfix.me/fwblock/app/context"
)

// CLI is the command line interface of fwblock.
type CLI struct {
	Menu      Menu      `kong:"cmd,default='1',help='Show the context menu installer.'"`
	Install   Install   `kong:"cmd,help='Install the Explorer context menu.'"`
	Uninstall Uninstall `kong:"cmd,help='Uninstall the Explorer context menu.'"`
	Status    Status    `kong:"cmd,help='Show the context menu installation status.'"`
	Block     Block     `kong:"cmd,help='Create a firewall rule that blocks a program.'"`
	Unblock   Unblock   `kong:"cmd,help='Remove a firewall rule.',aliases='rm'"`
	Exists    Exists    `kong:"cmd,help='Check whether a firewall rule exists.'"`
	List      List      `kong:"cmd,help='List firewall rules.',aliases='ls'"`
	Name      Name      `kong:"cmd,help='Generate a rule name for a program.'"`

	Log struct {
		Level slog.Level `enum:"DEBUG,INFO,WARN,ERROR" default:"INFO" help:"Set the app logging level."`
	} `embed:"" prefix:"log-"`
	// NOTE: I'm deliberately not using kong.ConfigFlag or its support for reading
	// values from configuration files, since I want to manage configuration
	// independently from the CLI.
	ConfigFile string           `kong:"default='${configFile}',help='Path to the fwblock configuration file.'"`
	Version    kong.VersionFlag `kong:"help='Output version and exit.'"`

	kong *kong.Kong
	kctx *kong.Context
}

// New initializes the command-line interface.
func New(appCtx *actx.Context, configFilePath, version string) (*CLI, error) {
	c := &CLI{}
	kparser, err := kong.New(c,
		kong.Name("fwblock"),
		kong.Description("Block programs in Windows Defender Firewall."),
		kong.UsageOnError(),
		kong.DefaultEnvars("FWBLOCK"),
		kong.Writers(appCtx.Stdout, appCtx.Stderr),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"configFile": configFilePath,
			"version":    version,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed creating the Kong parser: %w", err)
	}

	c.kong = kparser

	return c, nil
}

// Execute starts the command execution. Parse must be called before this method.
func (c *CLI) Execute(appCtx *actx.Context) error {
	if c.kctx == nil {
		panic("the CLI wasn't initialized properly")
	}
	c.kong.Stdout = appCtx.Stdout
	c.kong.Stderr = appCtx.Stderr

	//nolint:wrapcheck // This is fine.
	return c.kctx.Run(appCtx)
}

// Parse the given command line arguments. This method must be called before
// Execute.
func (c *CLI) Parse(args []string) error {
	kctx, err := c.kong.Parse(args)
	if err != nil {
		return fmt.Errorf("failed parsing CLI arguments: %w", err)
	}
	c.kctx = kctx

	return nil
}

// IsCommand reports whether name is the name or an alias of a top-level
// command. Matching is case-insensitive, like Windows file names.
func (c *CLI) IsCommand(name string) bool {
	for _, node := range c.kong.Model.Children {
		if node.Type != kong.CommandNode {
			continue
		}
		if strings.EqualFold(node.Name, name) {
			return true
		}
		for _, alias := range node.Aliases {
			if strings.EqualFold(alias, name) {
				return true
			}
		}
	}

	return false
}

// ContextMenuArgs returns the arguments of the command run when the program is
// launched from the Explorer context menu with a file path and an optional
// direction.
func ContextMenuArgs(path string, rest ...string) []string {
	args := []string{"block", "--notify", "--", path}
	if len(rest) > 0 {
		args = append(args, rest[0])
	}
	return args
}
