package netsh

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ftypes "go.hackfix.me/fwblock/firewall/types"
)

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	calls []call
	out   *Output
	err   error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (*Output, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func newTestNetsh(out *Output, err error) (*Netsh, *fakeRunner) {
	r := &fakeRunner{out: out, err: err}
	return New(r, "netsh.exe", slog.New(slog.DiscardHandler)), r
}

func TestNetshAddBlockRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rule       ftypes.Rule
		out        *Output
		runErr     error
		expArgs    []string
		expSuccess bool
		expErr     string
	}{
		{
			name: "ok/inbound",
			rule: ftypes.Rule{Name: "Block_in_app_20250101_000000", Program: `C:\Tools\app.exe`, Direction: ftypes.DirectionIn},
			out:  &Output{Stdout: "Ok.\r\n"},
			expArgs: []string{
				"advfirewall", "firewall", "add", "rule",
				"name=Block_in_app_20250101_000000", "dir=in", `program=C:\Tools\app.exe`,
				"action=block", "enable=yes",
			},
			expSuccess: true,
		},
		{
			name: "ok/outbound_with_spaces",
			rule: ftypes.Rule{Name: "Block out", Program: `C:\Program Files\App\app.exe`, Direction: ftypes.DirectionOut},
			out:  &Output{Stdout: "Ok.\r\n"},
			expArgs: []string{
				"advfirewall", "firewall", "add", "rule",
				"name=Block out", "dir=out", `program=C:\Program Files\App\app.exe`,
				"action=block", "enable=yes",
			},
			expSuccess: true,
		},
		{
			name: "ok/non_zero_exit",
			rule: ftypes.Rule{Name: "r", Program: `C:\app.exe`, Direction: ftypes.DirectionIn},
			out:  &Output{Stdout: "The requested operation requires elevation (Run as administrator).\r\n", ExitCode: 1},
			expArgs: []string{
				"advfirewall", "firewall", "add", "rule",
				"name=r", "dir=in", `program=C:\app.exe`, "action=block", "enable=yes",
			},
			expSuccess: false,
		},
		{
			name:   "err/runner_fails",
			rule:   ftypes.Rule{Name: "r", Program: `C:\app.exe`, Direction: ftypes.DirectionIn},
			runErr: errors.New("executable file not found in %PATH%"),
			expErr: "failed running netsh.exe: executable file not found",
		},
		{
			name:   "err/quote_in_name",
			rule:   ftypes.Rule{Name: `evil" dir=out`, Program: `C:\app.exe`, Direction: ftypes.DirectionIn},
			expErr: "must not contain double quotes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n, r := newTestNetsh(tt.out, tt.runErr)
			res, err := n.AddBlockRule(t.Context(), tt.rule)
			if tt.expErr != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.expErr)
				assert.Nil(t, res)
				if tt.runErr == nil {
					var ierr *ftypes.InvalidInputError
					assert.True(t, errors.As(err, &ierr))
					assert.Empty(t, r.calls)
				}
				return
			}
			require.NoError(t, err)
			require.Len(t, r.calls, 1)
			assert.Equal(t, "netsh.exe", r.calls[0].name)
			assert.Equal(t, tt.expArgs, r.calls[0].args)
			assert.Equal(t, tt.expSuccess, res.Success)
			assert.Equal(t, tt.out.ExitCode, res.ExitCode)
			assert.Equal(t, tt.out.Stdout, res.Output)
		})
	}

	t.Run("err/control_characters", func(t *testing.T) {
		t.Parallel()
		n, r := newTestNetsh(&Output{}, nil)
		_, err := n.AddBlockRule(t.Context(), ftypes.Rule{
			Name: "a\r\nb", Program: `C:\app.exe`, Direction: ftypes.DirectionIn,
		})
		require.Error(t, err)
		assert.ErrorContains(t, err, "control characters")
		var ierr *ftypes.InvalidInputError
		assert.True(t, errors.As(err, &ierr))
		assert.Empty(t, r.calls)
	})
}

func TestNetshDeleteRule(t *testing.T) {
	t.Parallel()

	n, r := newTestNetsh(&Output{Stdout: "\r\nDeleted 1 rule(s).\r\nOk.\r\n"}, nil)
	res, err := n.DeleteRule(t.Context(), "Block_in_app")
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{"advfirewall", "firewall", "delete", "rule", "name=Block_in_app"}, r.calls[0].args)
}

func TestNetshShowRules(t *testing.T) {
	t.Parallel()

	listing := FormatListing([]ftypes.Rule{
		{Name: "Block_in_app", Program: `C:\Tools\app.exe`, Direction: ftypes.DirectionIn},
		{Name: "Block_out_other", Program: `C:\Tools\other.exe`, Direction: ftypes.DirectionOut},
		{Name: "Block_out_app", Program: `C:\Tools\app.exe`, Direction: ftypes.DirectionOut},
	}, true)

	t.Run("ok/all", func(t *testing.T) {
		t.Parallel()
		n, r := newTestNetsh(&Output{Stdout: listing}, nil)
		res, err := n.ShowRules(t.Context(), ftypes.Filter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"advfirewall", "firewall", "show", "rule", "name=all"}, r.calls[0].args)
		assert.Equal(t, listing, res.Output)
	})

	t.Run("ok/all_verbose", func(t *testing.T) {
		t.Parallel()
		n, r := newTestNetsh(&Output{Stdout: listing}, nil)
		res, err := n.ShowRules(t.Context(), ftypes.Filter{Verbose: true})
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"advfirewall", "firewall", "show", "rule", "name=all", "verbose"}, r.calls[0].args)
		assert.Equal(t, listing, res.Output)
	})

	t.Run("ok/by_name", func(t *testing.T) {
		t.Parallel()
		n, r := newTestNetsh(&Output{Stdout: listing}, nil)
		_, err := n.ShowRules(t.Context(), ftypes.Filter{Name: "Block_in_app"})
		require.NoError(t, err)
		assert.Equal(t, []string{"advfirewall", "firewall", "show", "rule", "name=Block_in_app"}, r.calls[0].args)
	})

	t.Run("ok/by_program", func(t *testing.T) {
		t.Parallel()
		n, r := newTestNetsh(&Output{Stdout: listing}, nil)
		res, err := n.ShowRules(t.Context(), ftypes.Filter{Program: `c:\tools\APP.exe`})
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"advfirewall", "firewall", "show", "rule", "name=all", "verbose"}, r.calls[0].args)

		rules := ParseRules(res.Output)
		require.Len(t, rules, 2)
		assert.Equal(t, "Block_in_app", rules[0].Name())
		assert.Equal(t, "Block_out_app", rules[1].Name())
		assert.NotContains(t, res.Output, "other.exe")
	})

	t.Run("ok/by_program_failure_untouched", func(t *testing.T) {
		t.Parallel()
		out := &Output{Stdout: "No rules match the specified criteria.\r\n", ExitCode: 1}
		n, _ := newTestNetsh(out, nil)
		res, err := n.ShowRules(t.Context(), ftypes.Filter{Program: `C:\app.exe`})
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, out.Stdout, res.Output)
	})
}

func TestDefaultTool(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "netsh", DefaultTool(func(string) string { return "" }))

	tool := DefaultTool(func(key string) string {
		if key == "SystemRoot" {
			return "/windows"
		}
		return ""
	})
	assert.Contains(t, tool, "System32")
	assert.Contains(t, tool, "netsh.exe")
}

func TestComposeCmdLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tool string
		args []string
		exp  string
	}{
		{
			name: "ok/plain",
			tool: `C:\Windows\System32\netsh.exe`,
			args: []string{"advfirewall", "firewall", "delete", "rule", "name=Block_in_app"},
			exp:  `C:\Windows\System32\netsh.exe advfirewall firewall delete rule name=Block_in_app`,
		},
		{
			name: "ok/spaces",
			tool: `C:\Windows Dir\netsh.exe`,
			args: []string{"add", "rule", "name=Block in app", `program=C:\Program Files\app.exe`, "dir=in"},
			exp:  `"C:\Windows Dir\netsh.exe" add rule name="Block in app" program="C:\Program Files\app.exe" dir=in`,
		},
		{
			name: "ok/empty_value",
			tool: "netsh",
			args: []string{"name="},
			exp:  `netsh name=""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.exp, composeCmdLine(tt.tool, tt.args))
		})
	}
}
