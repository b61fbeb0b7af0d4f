package types

import (
	"context"
	"fmt"
	"strings"
)

// FirewallType are the supported firewall implementations.
type FirewallType string

// All supported firewall implementations.
const (
	FirewallMock  FirewallType = "mock"
	FirewallNetsh FirewallType = "netsh"
)

// FirewallTypeFromString returns a valid FirewallType for the given string, or
// an error if the value is invalid.
func FirewallTypeFromString(val string) (FirewallType, error) {
	switch FirewallType(val) {
	case FirewallMock:
		return FirewallMock, nil
	case FirewallNetsh:
		return FirewallNetsh, nil
	}
	return "", fmt.Errorf("unsupported firewall type '%s'", val)
}

// Direction is the traffic direction a rule applies to, relative to the host.
type Direction string

// Supported traffic directions. The values match the ones accepted by netsh.
const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// DirectionFromString parses a direction case-insensitively. Only "in" and
// "out" are accepted.
func DirectionFromString(val string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(val))) {
	case DirectionIn:
		return DirectionIn, nil
	case DirectionOut:
		return DirectionOut, nil
	}
	return "", &InvalidInputError{
		Field: "direction",
		Msg:   fmt.Sprintf("invalid direction '%s': must be 'in' or 'out'", val),
	}
}

// Valid reports whether d is one of the supported directions.
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Long returns the human readable name of the direction.
func (d Direction) Long() string {
	switch d {
	case DirectionIn:
		return "inbound"
	case DirectionOut:
		return "outbound"
	}
	return string(d)
}

// Rule is the specification of a rule that blocks the traffic of a single
// program in a single direction.
type Rule struct {
	Name      string
	Program   string
	Direction Direction
}

// Filter narrows down show queries. Empty fields match all rules.
type Filter struct {
	Name    string
	Program string
	// Verbose requests the detailed listing, which includes each rule's
	// program. Filtering by program always uses it.
	Verbose bool
}

// Result is the outcome of a single firewall tool invocation.
type Result struct {
	Success  bool
	ExitCode int
	Output   string
	Stderr   string
}

// ErrorText returns the most useful text describing a failed invocation.
// netsh writes most of its errors to stdout, so that's used when stderr is
// empty.
func (r *Result) ErrorText() string {
	if s := strings.TrimSpace(r.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(r.Output)
}

// Firewall is the interface to the OS firewall rule store.
//
// Implementations only return an error if the firewall couldn't be queried at
// all. A query that ran and was rejected is reported via Result.Success.
type Firewall interface {
	// AddBlockRule adds an enabled rule blocking traffic of the rule's program.
	AddBlockRule(ctx context.Context, rule Rule) (*Result, error)

	// DeleteRule deletes all rules with the given name.
	DeleteRule(ctx context.Context, name string) (*Result, error)

	// ShowRules returns the textual listing of the rules matching the filter.
	ShowRules(ctx context.Context, filter Filter) (*Result, error)
}
