package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	ftypes "go.hackfix.me/fwblock/firewall/types"
)

func addTestRules(ctx context.Context, app *testApp) error {
	rules := []ftypes.Rule{
		{Name: "r1", Program: "/tools/app.exe", Direction: ftypes.DirectionIn},
		{Name: "r2", Program: "/tools/other.exe", Direction: ftypes.DirectionOut},
		{Name: "r3", Program: "/TOOLS/APP.EXE", Direction: ftypes.DirectionOut},
	}
	for _, r := range rules {
		if _, err := app.fw.AddBlockRule(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func TestAppUnblock(t *testing.T) {
	t.Parallel()

	tctx, cancel, h := newTestContext(t, 5*time.Second)
	defer cancel()

	app, err := newTestApp(tctx, testAppOptions{})
	h(assert.NoError(t, err))
	h(assert.NoError(t, addTestRules(tctx, app)))

	err = app.Run("unblock", "r1")
	h(assert.NoError(t, err))
	h(assert.NotContains(t, app.fw.Rules, "r1"))

	err = app.Run("rm", "r2")
	h(assert.NoError(t, err))
	h(assert.NotContains(t, app.fw.Rules, "r2"))

	err = app.Run("unblock", "r1")
	h(assert.ErrorContains(t, err, "failed removing firewall rule"))
}

func TestAppExists(t *testing.T) {
	t.Parallel()

	tctx, cancel, h := newTestContext(t, 5*time.Second)
	defer cancel()

	app, err := newTestApp(tctx, testAppOptions{})
	h(assert.NoError(t, err))
	h(assert.NoError(t, addTestRules(tctx, app)))

	err = app.Run("exists", "r1")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "true\n", app.stdout.String()))

	err = app.Run("exists", "nope")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "false\n", app.stdout.String()))

	// Failures are reported as a missing rule.
	app.fw.SetExitCode(1)
	err = app.Run("exists", "r1")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "false\n", app.stdout.String()))
}

func TestAppList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		args        []string
		expContains []string
		expMissing  []string
		expErr      string
	}{
		{
			name:        "ok/all",
			args:        []string{"list"},
			expContains: []string{"Rule Name:", "r1", "r2", "r3", "Ok."},
			expMissing:  []string{"Program:"},
		},
		{
			name:        "ok/program",
			args:        []string{"list", "--program", "/tools/app.exe"},
			expContains: []string{"r1", "r3", "/tools/app.exe"},
			expMissing:  []string{"r2", "/tools/other.exe"},
		},
		{
			name:        "ok/table",
			args:        []string{"ls", "--table"},
			expContains: []string{"r1", "r2", "r3", "In", "Out", "Block", "/tools/other.exe"},
			expMissing:  []string{"Rule Name:", "----", "Ok."},
		},
		{
			name:   "err/program_missing",
			args:   []string{"list", "--program", "/tools/missing.exe"},
			expErr: "failed listing firewall rules",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tctx, cancel, h := newTestContext(t, 5*time.Second)
			defer cancel()

			app, err := newTestApp(tctx, testAppOptions{})
			h(assert.NoError(t, err))
			h(assert.NoError(t, addTestRules(tctx, app)))

			err = app.Run(tt.args...)
			if tt.expErr != "" {
				h(assert.ErrorContains(t, err, tt.expErr))
				return
			}
			h(assert.NoError(t, err))

			stdout := app.stdout.String()
			for _, s := range tt.expContains {
				h(assert.Contains(t, stdout, s))
			}
			for _, s := range tt.expMissing {
				h(assert.NotContains(t, stdout, s))
			}
		})
	}
}

func TestAppName(t *testing.T) {
	t.Parallel()

	tctx, cancel, h := newTestContext(t, 5*time.Second)
	defer cancel()

	app, err := newTestApp(tctx, testAppOptions{})
	h(assert.NoError(t, err))

	err = app.Run("name", `C:\Games\game.exe`, "Out")
	h(assert.NoError(t, err))
	h(assert.Equal(t, "Block_out_game_20250101_000000\n", app.stdout.String()))

	err = app.Run("name", "app.exe", "up")
	h(assert.EqualError(t, err, "invalid direction 'up': must be 'in' or 'out'"))
}
