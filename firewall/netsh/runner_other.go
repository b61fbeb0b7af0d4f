//go:build !windows

package netsh

import "os/exec"

func configureCmd(*exec.Cmd, string, []string) {}
