package netsh

import (
	"fmt"
	"strings"

	ftypes "go.hackfix.me/fwblock/firewall/types"
)

const separator = "----------------------------------------------------------------------"

// FormatRule renders a block rule the way 'netsh advfirewall firewall show
// rule' does. Only the verbose form includes the program.
func FormatRule(rule ftypes.Rule, verbose bool) string {
	dir := "In"
	if rule.Direction == ftypes.DirectionOut {
		dir = "Out"
	}

	fields := []Field{
		{"Enabled", "Yes"},
		{"Direction", dir},
		{"Profiles", "Domain,Private,Public"},
		{"Grouping", ""},
		{"LocalIP", "Any"},
		{"RemoteIP", "Any"},
		{"Protocol", "Any"},
	}
	if verbose {
		fields = append(fields, Field{"Program", rule.Program})
	}
	fields = append(fields,
		Field{"Edge traversal", "No"},
		Field{"Action", "Block"},
	)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-38s%s\n%s\n", "Rule Name:", rule.Name, separator)
	for _, f := range fields {
		fmt.Fprintf(&sb, "%-38s%s\n", f.Key+":", f.Value)
	}

	return sb.String()
}

// FormatListing renders a full show rule response for the given rules.
func FormatListing(rules []ftypes.Rule, verbose bool) string {
	var sb strings.Builder
	sb.WriteString("\n")
	for _, rule := range rules {
		sb.WriteString(FormatRule(rule, verbose))
		sb.WriteString("\n")
	}
	sb.WriteString("Ok.\n\n")

	return sb.String()
}
