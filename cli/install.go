package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	actx "go.hackfix.me/fwblock/app/context"
	aerrors "go.hackfix.me/fwblock/app/errors"
	"go.hackfix.me/fwblock/shell"
)

// Install installs the Explorer context menu.
type Install struct{}

// Run the install command.
func (c *Install) Run(appCtx *actx.Context) error {
	if err := install(appCtx); err != nil {
		return err
	}
	_, err := fmt.Fprintln(appCtx.Stdout, "Context menu installed successfully.")
	return err //nolint:wrapcheck // This is fine.
}

// Uninstall removes the Explorer context menu.
type Uninstall struct{}

// Run the uninstall command.
func (c *Uninstall) Run(appCtx *actx.Context) error {
	if err := uninstall(appCtx); err != nil {
		return err
	}
	_, err := fmt.Fprintln(appCtx.Stdout, "Context menu uninstalled successfully.")
	return err //nolint:wrapcheck // This is fine.
}

// Status shows whether the Explorer context menu is installed.
type Status struct{}

// Run the status command.
func (c *Status) Run(appCtx *actx.Context) error {
	return printStatus(appCtx.Stdout, appCtx)
}

func install(appCtx *actx.Context) error {
	err := appCtx.Shell.Install(appCtx.ExecPath)
	if err != nil {
		return installerErr(err, "install")
	}
	return nil
}

func uninstall(appCtx *actx.Context) error {
	err := appCtx.Shell.Uninstall()
	if err != nil {
		return installerErr(err, "uninstall")
	}
	return nil
}

func installerErr(err error, action string) error {
	var adminErr *shell.AdminRequiredError
	if errors.As(err, &adminErr) {
		return aerrors.With(err, "hint", "Right-click the program and select 'Run as administrator'.")
	}
	return aerrors.NewWithCause(fmt.Sprintf("failed to %s the context menu", action), err)
}

func printStatus(w io.Writer, appCtx *actx.Context) error {
	r := lipgloss.NewRenderer(w)
	var (
		title = r.NewStyle().Bold(true)
		ok    = r.NewStyle().Foreground(lipgloss.Color("10"))
		warn  = r.NewStyle().Foreground(lipgloss.Color("11"))
	)

	status := warn.Render("Not installed")
	if appCtx.Shell.IsInstalled() {
		status = ok.Render("Installed")
	}

	priv := warn.Render("Standard user (install and uninstall require Administrator)")
	if appCtx.Shell.IsAdmin() {
		priv = ok.Render("Administrator")
	}

	_, err := fmt.Fprintf(w, "%s\n\nContext menu: %s\nPrivileges:   %s\n",
		title.Render("Firewall Block Context Menu Installer"), status, priv)

	return err //nolint:wrapcheck // This is fine.
}
