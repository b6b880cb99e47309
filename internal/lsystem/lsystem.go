// Package lsystem implements deterministic, context-free string rewriting.
package lsystem

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/procscape/internal/logger"
)

// MaxIterations bounds expansion depth. Output grows multiplicatively per
// iteration, so deeper systems are rejected rather than truncated.
const MaxIterations = 6

var (
	ErrNoRules    = errors.New("l-system has no rules")
	ErrIterations = errors.New("iteration count out of range")
	ErrBadRule    = errors.New("malformed rule")
)

// Rule rewrites one symbol into a production string.
type Rule struct {
	Symbol      byte   `yaml:"symbol"`
	Replacement string `yaml:"replacement"`
}

// String formats the rule as "F=F[+F]F".
func (r Rule) String() string {
	return string(r.Symbol) + "=" + r.Replacement
}

// System is an axiom, an ordered rule list and an iteration count.
// A System is immutable once built.
type System struct {
	axiom      string
	rules      []Rule
	iterations int

	// table maps each symbol to the index of its first rule, -1 when unmatched.
	table [256]int
}

// New validates the inputs and builds a System. When several rules share a
// symbol the first one listed wins; Duplicates reports the shadowed ones.
func New(axiom string, rules []Rule, iterations int) (*System, error) {
	if len(rules) == 0 {
		return nil, ErrNoRules
	}
	if iterations < 0 || iterations > MaxIterations {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrIterations, iterations, MaxIterations)
	}

	s := &System{
		axiom:      axiom,
		rules:      append([]Rule(nil), rules...),
		iterations: iterations,
	}
	for i := range s.table {
		s.table[i] = -1
	}
	for i, r := range s.rules {
		if s.table[r.Symbol] < 0 {
			s.table[r.Symbol] = i
		}
	}
	return s, nil
}

// Axiom returns the start string.
func (s *System) Axiom() string { return s.axiom }

// Iterations returns the configured expansion depth.
func (s *System) Iterations() int { return s.iterations }

// Rules returns a copy of the rule list in declaration order.
func (s *System) Rules() []Rule { return append([]Rule(nil), s.rules...) }

// Duplicates returns the rules that never fire because an earlier rule
// has the same symbol.
func (s *System) Duplicates() []Rule {
	var out []Rule
	for i, r := range s.rules {
		if s.table[r.Symbol] != i {
			out = append(out, r)
		}
	}
	return out
}

// Expand applies the rules Iterations times. Each pass rewrites every symbol
// of the previous string; symbols without a rule are copied unchanged.
func (s *System) Expand() string {
	current := s.axiom
	for range s.iterations {
		var b strings.Builder
		b.Grow(len(current) * 2)
		for i := 0; i < len(current); i++ {
			if r := s.table[current[i]]; r >= 0 {
				b.WriteString(s.rules[r].Replacement)
			} else {
				b.WriteByte(current[i])
			}
		}
		current = b.String()
	}

	logger.Named("lsystem").Debug("expanded",
		zap.String("axiom", s.axiom),
		zap.Int("iterations", s.iterations),
		zap.Int("length", len(current)),
	)
	return current
}

// PredictLength returns len(Expand()) without building any string.
//
// Every symbol's length after n passes only depends on the lengths of the
// symbols in its production after n-1 passes, so a per-symbol table is
// iterated instead.
func (s *System) PredictLength() int {
	var lengths [256]int
	for i := range lengths {
		lengths[i] = 1
	}
	for range s.iterations {
		var next [256]int
		for c := range next {
			r := s.table[c]
			if r < 0 {
				next[c] = 1
				continue
			}
			n := 0
			prod := s.rules[r].Replacement
			for i := 0; i < len(prod); i++ {
				n += lengths[prod[i]]
			}
			next[c] = n
		}
		lengths = next
	}

	total := 0
	for i := 0; i < len(s.axiom); i++ {
		total += lengths[s.axiom[i]]
	}
	return total
}
