package netsh

import (
	"strings"
)

// Field is a single "Key: Value" line of a rule listing.
type Field struct {
	Key   string
	Value string
}

// RuleListing is a single rule block of 'netsh advfirewall firewall show rule'
// output.
type RuleListing struct {
	Fields []Field
	// Raw is the verbatim text of the block.
	Raw string
}

// Get returns the value of the field with the given key, compared
// case-insensitively, or an empty string if the field doesn't exist.
func (r RuleListing) Get(key string) string {
	for _, f := range r.Fields {
		if strings.EqualFold(f.Key, key) {
			return f.Value
		}
	}
	return ""
}

// Name returns the rule name.
func (r RuleListing) Name() string {
	return r.Get("Rule Name")
}

// ParseRules parses the output of 'netsh advfirewall firewall show rule'. Each
// rule starts with a header line followed by a line of dashes, and ends at the
// next blank line. Anything outside of rule blocks, like the trailing "Ok.", is
// ignored.
func ParseRules(text string) []RuleListing {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var rules []RuleListing
	for i := 0; i < len(lines)-1; i++ {
		if strings.TrimSpace(lines[i]) == "" || !isSeparator(lines[i+1]) {
			continue
		}

		end := i + 2
		for end < len(lines) && strings.TrimSpace(lines[end]) != "" {
			end++
		}

		rule := RuleListing{Raw: strings.Join(lines[i:end], "\n")}
		body := append([]string{lines[i]}, lines[i+2:end]...)
		for _, line := range body {
			key, val, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			rule.Fields = append(rule.Fields, Field{
				Key:   strings.TrimSpace(key),
				Value: strings.TrimSpace(val),
			})
		}
		rules = append(rules, rule)
		i = end
	}

	return rules
}

// FilterByProgram returns the verbatim blocks of the rules in text whose
// program is the given path. Paths are compared case-insensitively, as they
// are on Windows.
func FilterByProgram(text, program string) string {
	var blocks []string
	for _, rule := range ParseRules(text) {
		if strings.EqualFold(rule.Get("Program"), program) {
			blocks = append(blocks, rule.Raw)
		}
	}
	if len(blocks) == 0 {
		return ""
	}

	return strings.Join(blocks, "\n\n") + "\n"
}

func isSeparator(line string) bool {
	line = strings.TrimSpace(line)
	return len(line) > 0 && strings.Trim(line, "-") == ""
}
