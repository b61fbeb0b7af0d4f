// Package mock implements an in-memory firewall used for testing and dry runs.
package mock

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"go.hackfix.me/fwblock/firewall/netsh"
	ftypes "go.hackfix.me/fwblock/firewall/types"
)

// NoMatchOutput is the output of show queries that match no rules.
const NoMatchOutput = "No rules match the specified criteria.\r\n"

// Call is a single recorded call to the mock firewall.
type Call struct {
	Method string
	Rule   ftypes.Rule
	Filter ftypes.Filter
}

// Mock is an in-memory firewall rule store.
type Mock struct {
	mx       sync.Mutex
	Rules    map[string][]ftypes.Rule
	Calls    []Call
	failErr  error // to simulate invocation errors
	exitCode int   // to simulate rejected commands
	logger   *slog.Logger
}

var _ ftypes.Firewall = (*Mock)(nil)

// New returns a new empty Mock firewall.
func New(logger *slog.Logger) *Mock {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Mock{
		Rules:  make(map[string][]ftypes.Rule),
		logger: logger.With("type", "mock"),
	}
}

// AddBlockRule implements the ftypes.Firewall interface.
func (m *Mock) AddBlockRule(_ context.Context, rule ftypes.Rule) (*ftypes.Result, error) {
	m.mx.Lock()
	defer m.mx.Unlock()

	m.Calls = append(m.Calls, Call{Method: "AddBlockRule", Rule: rule})
	if res, err := m.failure(); res != nil || err != nil {
		return res, err
	}

	m.Rules[rule.Name] = append(m.Rules[rule.Name], rule)
	m.logger.Debug("added rule", "rule.name", rule.Name)

	return &ftypes.Result{Success: true, Output: "Ok.\r\n\r\n"}, nil
}

// DeleteRule implements the ftypes.Firewall interface.
func (m *Mock) DeleteRule(_ context.Context, name string) (*ftypes.Result, error) {
	m.mx.Lock()
	defer m.mx.Unlock()

	m.Calls = append(m.Calls, Call{Method: "DeleteRule", Rule: ftypes.Rule{Name: name}})
	if res, err := m.failure(); res != nil || err != nil {
		return res, err
	}

	rules, ok := m.Rules[name]
	if !ok {
		return &ftypes.Result{ExitCode: 1, Output: "\r\n" + NoMatchOutput}, nil
	}
	delete(m.Rules, name)

	return &ftypes.Result{
		Success: true,
		Output:  fmt.Sprintf("\r\nDeleted %d rule(s).\r\nOk.\r\n\r\n", len(rules)),
	}, nil
}

// ShowRules implements the ftypes.Firewall interface.
func (m *Mock) ShowRules(_ context.Context, filter ftypes.Filter) (*ftypes.Result, error) {
	m.mx.Lock()
	defer m.mx.Unlock()

	m.Calls = append(m.Calls, Call{Method: "ShowRules", Filter: filter})
	if res, err := m.failure(); res != nil || err != nil {
		return res, err
	}

	var matched []ftypes.Rule
	for _, name := range slices.Sorted(maps.Keys(m.Rules)) {
		if filter.Name != "" && filter.Name != name {
			continue
		}
		for _, rule := range m.Rules[name] {
			if filter.Program != "" && !strings.EqualFold(filter.Program, rule.Program) {
				continue
			}
			matched = append(matched, rule)
		}
	}

	if len(matched) == 0 {
		if filter.Program != "" {
			return &ftypes.Result{Success: true}, nil
		}
		return &ftypes.Result{ExitCode: 1, Output: "\r\n" + NoMatchOutput}, nil
	}

	verbose := filter.Verbose || filter.Program != ""
	return &ftypes.Result{Success: true, Output: netsh.FormatListing(matched, verbose)}, nil
}

// SetFailError makes all subsequent calls fail with err.
func (m *Mock) SetFailError(err error) {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.failErr = err
}

// SetExitCode makes all subsequent calls report a failed command with the
// given exit code. An exit code of 0 restores normal behavior.
func (m *Mock) SetExitCode(code int) {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.exitCode = code
}

// CallCount returns the number of recorded calls.
func (m *Mock) CallCount() int {
	m.mx.Lock()
	defer m.mx.Unlock()
	return len(m.Calls)
}

func (m *Mock) failure() (*ftypes.Result, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	if m.exitCode != 0 {
		return &ftypes.Result{
			ExitCode: m.exitCode,
			Output:   "The requested operation requires elevation (Run as administrator).\r\n\r\n",
		}, nil
	}
	return nil, nil
}
