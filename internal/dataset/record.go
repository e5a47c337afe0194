package dataset

import (
	"fmt"
	"strings"
)

// maxRenderedTests bounds how many failing tests appear in prompt text.
const maxRenderedTests = 5

// fieldClip bounds the length of any single rendered field.
const fieldClip = 200

// FailedTest is one failing unit test from a graded learner attempt.
// Status is "fail" for assertion mismatches and "error" for raised
// exceptions; the two shapes fill different field pairs.
type FailedTest struct {
	Name      string `json:"name"`
	Call      string `json:"call"`
	Expected  string `json:"expected,omitempty"`
	Actual    string `json:"actual,omitempty"`
	ErrorType string `json:"error_type,omitempty"`
	ErrorMsg  string `json:"error_msg,omitempty"`
	Status    string `json:"status"`
}

// Record is one failing learner attempt with its tutoring context.
type Record struct {
	Split       string
	ProblemID   int
	AttemptID   int
	Problem     string
	LearnerCode string
	HumanHint   string
	FailedTests []FailedTest
}

// Key identifies the record within its dataset.
func (r Record) Key() string {
	return fmt.Sprintf("%s/%d/%d", r.Split, r.ProblemID, r.AttemptID)
}

// FailureText renders the failed tests one per line, each ending in a
// status tag. This is the shape the analyzer and the prompt builders
// consume.
func (r Record) FailureText() string {
	var b strings.Builder
	for i, ft := range r.FailedTests {
		if i >= maxRenderedTests {
			break
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		switch ft.Status {
		case "error":
			fmt.Fprintf(&b, "%s: %s: %s: %s [error]",
				clip(ft.Name), clip(ft.Call), clip(ft.ErrorType), clip(ft.ErrorMsg))
		default:
			fmt.Fprintf(&b, "%s: %s: expected %s, got %s [fail]",
				clip(ft.Name), clip(ft.Call), clip(ft.Expected), clip(ft.Actual))
		}
	}
	return b.String()
}

// clip flattens newlines and bounds the field length.
func clip(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	runes := []rune(s)
	if len(runes) <= fieldClip {
		return s
	}
	return string(runes[:fieldClip-3]) + "..."
}
