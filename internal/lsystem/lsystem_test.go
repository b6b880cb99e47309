package lsystem

import (
	"errors"
	"strings"
	"testing"
)

var branch = []Rule{{Symbol: 'F', Replacement: "F[+F]F[-F]F"}}

func mustNew(t *testing.T, axiom string, rules []Rule, n int) *System {
	t.Helper()
	s, err := New(axiom, rules, n)
	if err != nil {
		t.Fatalf("New(%q, %d) error = %v", axiom, n, err)
	}
	return s
}

func TestNewErrors(t *testing.T) {
	if _, err := New("F", nil, 1); !errors.Is(err, ErrNoRules) {
		t.Errorf("New(no rules) error = %v, want ErrNoRules", err)
	}
	for _, n := range []int{-1, MaxIterations + 1} {
		if _, err := New("F", branch, n); !errors.Is(err, ErrIterations) {
			t.Errorf("New(iterations=%d) error = %v, want ErrIterations", n, err)
		}
	}
}

func TestExpandZeroIterations(t *testing.T) {
	s := mustNew(t, "F+X", branch, 0)
	if got := s.Expand(); got != "F+X" {
		t.Errorf("Expand() = %q, want %q", got, "F+X")
	}
}

func TestExpandBranch(t *testing.T) {
	one := mustNew(t, "F", branch, 1).Expand()
	if one != "F[+F]F[-F]F" || len(one) != 11 {
		t.Fatalf("Expand() after 1 = %q, want F[+F]F[-F]F", one)
	}

	two := mustNew(t, "F", branch, 2).Expand()
	want := strings.ReplaceAll(one, "F", "F[+F]F[-F]F")
	if two != want {
		t.Errorf("Expand() after 2 = %q, want %q", two, want)
	}
	if len(two) != 61 {
		t.Errorf("len(Expand()) after 2 = %d, want 61", len(two))
	}
}

func TestExpandDoesNotMutate(t *testing.T) {
	s := mustNew(t, "F", branch, 2)
	a := s.Expand()
	b := s.Expand()
	if a != b || s.Axiom() != "F" {
		t.Errorf("Expand() not repeatable: %q vs %q, axiom %q", a, b, s.Axiom())
	}
}

func TestFirstRuleWins(t *testing.T) {
	rules := []Rule{
		{Symbol: 'A', Replacement: "AB"},
		{Symbol: 'B', Replacement: "A"},
		{Symbol: 'A', Replacement: "ZZZ"},
	}
	s := mustNew(t, "A", rules, 3)
	if got := s.Expand(); got != "ABAAB" {
		t.Errorf("Expand() = %q, want ABAAB", got)
	}
	d := s.Duplicates()
	if len(d) != 1 || d[0] != rules[2] {
		t.Errorf("Duplicates() = %v, want [%v]", d, rules[2])
	}
}

func TestPredictLength(t *testing.T) {
	tests := []struct {
		name  string
		axiom string
		rules []Rule
		n     int
	}{
		{"branch", "F", branch, 3},
		{"algae", "A", []Rule{{'A', "AB"}, {'B', "A"}}, 6},
		{"passthrough", "X+F-", branch, 2},
		{"shrinking", "FFF", []Rule{{'F', ""}}, 1},
		{"zero", "FF", branch, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustNew(t, tt.axiom, tt.rules, tt.n)
			if got, want := s.PredictLength(), len(s.Expand()); got != want {
				t.Errorf("PredictLength() = %d, want %d", got, want)
			}
		})
	}
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		in      string
		want    Rule
		wantErr bool
	}{
		{"F=F[+F]F", Rule{'F', "F[+F]F"}, false},
		{"F -> F[-F]", Rule{'F', "F[-F]"}, false},
		{" X = F+X ", Rule{'X', "F+X"}, false},
		{"F=", Rule{'F', ""}, false},
		{"F=F[->F]", Rule{'F', "F[->F]"}, false},
		{"FF=F", Rule{}, true},
		{"=F", Rule{}, true},
		{"F", Rule{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRule(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadRule) {
					t.Errorf("ParseRule(%q) error = %v, want ErrBadRule", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseRule(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]string{"F=FF", "", "X->F[+X]"})
	if err != nil {
		t.Fatalf("ParseRules() error = %v", err)
	}
	if len(rules) != 2 || rules[1].Symbol != 'X' {
		t.Errorf("ParseRules() = %v", rules)
	}
	if _, err := ParseRules([]string{"F=F", "bad"}); !errors.Is(err, ErrBadRule) {
		t.Errorf("ParseRules(bad) error = %v, want ErrBadRule", err)
	}
}
