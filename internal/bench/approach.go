package bench

import (
	"fmt"
	"strings"
)

// Approach identifies one way of producing a hint for a dataset record.
type Approach string

const (
	// Human judges the hint a human tutor wrote for the attempt.
	Human Approach = "human"
	// Base generates one direct hint from the base model.
	Base Approach = "base"
	// FineTuned generates one direct hint from the fine-tuned model.
	FineTuned Approach = "fine_tuned"
	// AgentBase runs the full tutoring loop over the base model.
	AgentBase Approach = "agent_base"
	// AgentFineTuned runs the full tutoring loop over the fine-tuned model.
	AgentFineTuned Approach = "agent_fine_tuned"
)

// AllApproaches lists every approach in report order.
var AllApproaches = []Approach{Human, Base, FineTuned, AgentBase, AgentFineTuned}

// Valid reports whether a names a known approach.
func (a Approach) Valid() bool {
	switch a {
	case Human, Base, FineTuned, AgentBase, AgentFineTuned:
		return true
	}
	return false
}

// Label returns the display name used in reports.
func (a Approach) Label() string {
	switch a {
	case Human:
		return "Human"
	case Base:
		return "Base"
	case FineTuned:
		return "Fine-tuned"
	case AgentBase:
		return "Agent (base)"
	case AgentFineTuned:
		return "Agent (fine-tuned)"
	}
	return string(a)
}

// ParseApproaches splits a comma-separated approach list. An empty input
// selects every approach.
func ParseApproaches(s string) ([]Approach, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return append([]Approach(nil), AllApproaches...), nil
	}
	var out []Approach
	for _, part := range strings.Split(s, ",") {
		a := Approach(strings.TrimSpace(part))
		if !a.Valid() {
			return nil, fmt.Errorf("unknown approach %q", part)
		}
		out = append(out, a)
	}
	return out, nil
}
