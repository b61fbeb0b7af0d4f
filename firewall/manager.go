package firewall

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"go.hackfix.me/fwblock/firewall/mock"
	"go.hackfix.me/fwblock/firewall/netsh"
	ftypes "go.hackfix.me/fwblock/firewall/types"
)

// DefaultNoMatchMarker is the text netsh prints when a show query matches no
// rules on an English Windows installation.
const DefaultNoMatchMarker = "No rules match the specified criteria"

// ruleNameTimeFormat is the yyyyMMdd_HHmmss timestamp used in rule names.
const ruleNameTimeFormat = "20060102_150405"

// Manager manages firewall rules that block the traffic of executables.
type Manager struct {
	firewall      ftypes.Firewall
	fs            vfs.FileSystem
	timeNow       func() time.Time
	noMatchMarker string
	logger        *slog.Logger
}

// NewManager returns a new Manager instance.
func NewManager(firewall ftypes.Firewall, opts ...Option) (*Manager, error) {
	if firewall == nil {
		return nil, errors.New("firewall implementation is required")
	}

	m := &Manager{firewall: firewall}

	opts = append(DefaultOptions(), opts...)
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// CreateBlockRule creates an enabled rule named name that blocks the traffic
// of the executable at path in the given direction. Arguments are validated
// before the firewall is called.
func (m *Manager) CreateBlockRule(
	ctx context.Context, path string, direction ftypes.Direction, name string,
) error {
	if err := m.validateProgram(path); err != nil {
		return err
	}
	if !direction.Valid() {
		return &ftypes.InvalidInputError{
			Field: "direction", Msg: "direction must be 'in' or 'out'",
		}
	}
	if err := validateName(name); err != nil {
		return err
	}

	rule := ftypes.Rule{Name: name, Program: path, Direction: direction}
	logger := m.logger.With(
		"rule.name", rule.Name,
		"rule.direction", rule.Direction,
		"rule.program", rule.Program,
	)
	logger.Debug("creating block rule")

	res, err := m.firewall.AddBlockRule(ctx, rule)
	if err = commandErr("create firewall rule", res, err); err != nil {
		return err
	}

	logger.Info("created block rule")

	return nil
}

// RemoveRule removes all rules with the given name.
func (m *Manager) RemoveRule(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	res, err := m.firewall.DeleteRule(ctx, name)
	if err = commandErr("remove firewall rule", res, err); err != nil {
		return err
	}

	m.logger.Info("removed rule", "rule.name", name)

	return nil
}

// RuleExists reports whether a rule with the given name exists. Any failure to
// query the firewall is reported as the rule not existing.
func (m *Manager) RuleExists(ctx context.Context, name string) bool {
	if name == "" {
		return false
	}

	res, err := m.firewall.ShowRules(ctx, ftypes.Filter{Name: name})
	if err != nil {
		m.logger.Debug("failed querying rule", "rule.name", name, "error", err)
		return false
	}
	if !res.Success {
		m.logger.Debug("failed querying rule", "rule.name", name, "exit_code", res.ExitCode)
		return false
	}

	return strings.TrimSpace(res.Output) != "" && !strings.Contains(res.Output, m.noMatchMarker)
}

// ListAllRules returns the textual listing of all firewall rules.
func (m *Manager) ListAllRules(ctx context.Context) (string, error) {
	return m.listAll(ctx, false)
}

// ListAllRulesVerbose returns the detailed listing of all firewall rules,
// which includes the program each rule applies to.
func (m *Manager) ListAllRulesVerbose(ctx context.Context) (string, error) {
	return m.listAll(ctx, true)
}

func (m *Manager) listAll(ctx context.Context, verbose bool) (string, error) {
	res, err := m.firewall.ShowRules(ctx, ftypes.Filter{Verbose: verbose})
	if err = commandErr("list firewall rules", res, err); err != nil {
		return "", err
	}

	return res.Output, nil
}

// ListRulesForExecutable returns the textual listing of the firewall rules
// that apply to the executable at path.
func (m *Manager) ListRulesForExecutable(ctx context.Context, path string) (string, error) {
	if err := m.validateProgram(path); err != nil {
		return "", err
	}

	res, err := m.firewall.ShowRules(ctx, ftypes.Filter{Program: path})
	if err = commandErr("list rules for executable", res, err); err != nil {
		return "", err
	}

	return res.Output, nil
}

// GenerateRuleName returns a rule name of the form
// Block_<direction>_<file name without extension>_<yyyyMMdd_HHmmss>. Names
// generated within the same second for the same file and direction collide.
func (m *Manager) GenerateRuleName(fileName string, direction ftypes.Direction) string {
	return fmt.Sprintf("Block_%s_%s_%s",
		direction, baseNameNoExt(fileName), m.timeNow().Format(ruleNameTimeFormat))
}

func (m *Manager) validateProgram(path string) error {
	if path == "" {
		return &ftypes.InvalidInputError{Field: "path", Msg: "invalid file path provided: path is empty"}
	}

	fi, err := m.fs.Stat(path)
	if err != nil {
		msg := fmt.Sprintf("invalid file path provided: %s", err)
		if vfs.IsErrNotExist(err) {
			msg = fmt.Sprintf("invalid file path provided: file '%s' doesn't exist", path)
		}
		return &ftypes.InvalidInputError{Field: "path", Msg: msg}
	}
	if !fi.Mode().IsRegular() {
		return &ftypes.InvalidInputError{
			Field: "path",
			Msg:   fmt.Sprintf("invalid file path provided: '%s' is not a regular file", path),
		}
	}

	return nil
}

func validateName(name string) error {
	if name == "" {
		return &ftypes.InvalidInputError{Field: "name", Msg: "rule name cannot be empty"}
	}
	if strings.ContainsRune(name, '"') {
		return &ftypes.InvalidInputError{Field: "name", Msg: "rule name must not contain double quotes"}
	}
	if strings.ContainsFunc(name, unicode.IsControl) {
		return &ftypes.InvalidInputError{Field: "name", Msg: "rule name must not contain control characters"}
	}
	return nil
}

// commandErr converts a failed firewall invocation into a CommandError.
func commandErr(op string, res *ftypes.Result, err error) error {
	if err != nil {
		// Arguments rejected by the backend are still invalid input.
		var ierr *ftypes.InvalidInputError
		if errors.As(err, &ierr) {
			return err
		}
		return &ftypes.CommandError{Op: op, ExitCode: -1, Err: err}
	}
	if !res.Success {
		return &ftypes.CommandError{Op: op, ExitCode: res.ExitCode, Output: res.ErrorText()}
	}
	return nil
}

// baseNameNoExt returns the last element of a Windows or slash separated path,
// without its extension.
func baseNameNoExt(fileName string) string {
	if i := strings.LastIndexAny(fileName, `/\`); i >= 0 {
		fileName = fileName[i+1:]
	}
	if i := strings.LastIndexByte(fileName, '.'); i > 0 {
		fileName = fileName[:i]
	}
	return fileName
}

// Setup creates a new Firewall of the given type. tool is the path of the
// netsh executable, and defaults to the system one if empty.
//
//nolint:ireturn // Intentional, this is a generic function.
func Setup(
	ft ftypes.FirewallType, tool string, getenv func(string) string, logger *slog.Logger,
) (ftypes.Firewall, error) {
	switch ft {
	case ftypes.FirewallMock:
		return mock.New(logger), nil
	case ftypes.FirewallNetsh:
		if tool == "" {
			tool = netsh.DefaultTool(getenv)
		}
		return netsh.New(netsh.ExecRunner{}, tool, logger), nil
	}

	return nil, fmt.Errorf("unsupported firewall type '%s'", ft)
}
