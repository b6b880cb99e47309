package lsystem

import (
	"fmt"
	"strings"
)

// ParseRule reads a rule written as "F=F[+F]F" or "F -> F[+F]F".
// Whitespace around the symbol and production is ignored.
func ParseRule(s string) (Rule, error) {
	sep := "="
	arrow := strings.Index(s, "->")
	if eq := strings.Index(s, "="); arrow >= 0 && (eq < 0 || arrow < eq) {
		sep = "->"
	}
	lhs, rhs, ok := strings.Cut(s, sep)
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q has no '=' or '->'", ErrBadRule, s)
	}

	lhs = strings.TrimSpace(lhs)
	if len(lhs) != 1 {
		return Rule{}, fmt.Errorf("%w: %q must rewrite a single symbol", ErrBadRule, s)
	}
	return Rule{Symbol: lhs[0], Replacement: strings.TrimSpace(rhs)}, nil
}

// ParseRules parses each entry with ParseRule. Empty entries are skipped.
func ParseRules(lines []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		r, err := ParseRule(line)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}
