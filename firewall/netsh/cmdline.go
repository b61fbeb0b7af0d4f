package netsh

import (
	"fmt"
	"strings"
	"unicode"

	ftypes "go.hackfix.me/fwblock/firewall/types"
)

// checkArg rejects argument values that can't be safely passed to netsh.
// netsh has no escape sequence for double quotes inside a quoted value.
func checkArg(arg string) error {
	if strings.ContainsRune(arg, '"') {
		return &ftypes.InvalidInputError{
			Field: "argument", Msg: fmt.Sprintf("argument %q must not contain double quotes", arg),
		}
	}
	if strings.ContainsFunc(arg, unicode.IsControl) {
		return &ftypes.InvalidInputError{
			Field: "argument", Msg: fmt.Sprintf("argument %q must not contain control characters", arg),
		}
	}
	return nil
}

// composeCmdLine builds the raw Windows command line for netsh. Values of
// key=value arguments are quoted as key="value" when needed, which is the form
// netsh's own tokenizer understands.
func composeCmdLine(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quoteValue(name))
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok {
			parts = append(parts, quoteValue(arg))
			continue
		}
		parts = append(parts, key+"="+quoteValue(val))
	}

	return strings.Join(parts, " ")
}

func quoteValue(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t") {
		return s
	}
	return `"` + s + `"`
}
