package strategy

import (
	"fmt"

	"github.com/abhisek/hintz/internal/analysis"
)

// Strategy is a tutoring approach for delivering a hint.
type Strategy string

const (
	// Direct points near the root cause without revealing the fix.
	Direct Strategy = "direct"
	// Questions asks guiding questions that steer toward the issue.
	Questions Strategy = "questions"
	// StepByStep suggests only the first concrete step to take.
	StepByStep Strategy = "step_by_step"
)

// All lists every strategy in declaration order.
var All = []Strategy{Direct, Questions, StepByStep}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case Direct, Questions, StepByStep:
		return true
	}
	return false
}

// Table maps complexity to an ordered strategy escalation.
type Table map[analysis.Complexity][]Strategy

// DefaultTable returns the standard escalation ordering. Simple failures
// start with near-direct pointers; complex failures start with guided
// decomposition and only fall back toward explicit pointers when guided
// approaches score poorly.
func DefaultTable() Table {
	return Table{
		analysis.Simple:   {Direct, Questions, StepByStep},
		analysis.Moderate: {Questions, StepByStep, Direct},
		analysis.Complex:  {StepByStep, Questions, Direct},
	}
}

// Validate checks that every escalation list is non-empty, free of
// duplicates, and contains only known strategies.
func (t Table) Validate() error {
	for _, c := range []analysis.Complexity{analysis.Simple, analysis.Moderate, analysis.Complex} {
		list, ok := t[c]
		if !ok || len(list) == 0 {
			return fmt.Errorf("no strategies for complexity %q", c)
		}
		seen := make(map[Strategy]bool, len(list))
		for _, s := range list {
			if !s.Valid() {
				return fmt.Errorf("unknown strategy %q for complexity %q", s, c)
			}
			if seen[s] {
				return fmt.Errorf("duplicate strategy %q for complexity %q", s, c)
			}
			seen[s] = true
		}
	}
	return nil
}

// Selector plans strategy escalation from a complexity assessment.
type Selector struct {
	table Table
}

// NewSelector creates a selector with the default escalation table.
func NewSelector() *Selector {
	return &Selector{table: DefaultTable()}
}

// NewSelectorWithTable creates a selector with a custom escalation table.
func NewSelectorWithTable(t Table) (*Selector, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid escalation table: %w", err)
	}
	return &Selector{table: t}, nil
}

// Plan returns the escalation order for complexity with excluded strategies
// removed, preserving the relative order of the remainder. An empty result
// signals that every candidate strategy has been tried. An unknown
// complexity falls back to the moderate ordering.
func (s *Selector) Plan(complexity analysis.Complexity, excluded map[Strategy]bool) []Strategy {
	base, ok := s.table[complexity]
	if !ok {
		base = s.table[analysis.Moderate]
	}

	plan := make([]Strategy, 0, len(base))
	for _, st := range base {
		if !excluded[st] {
			plan = append(plan, st)
		}
	}
	return plan
}
