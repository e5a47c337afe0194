package analysis

import (
	"regexp"
	"sort"
	"strings"
)

// Signals summarizes the failure evidence found in test output.
type Signals struct {
	Failures   int      // failing test count
	ErrorTypes []string // distinct exception type names, sorted
}

var (
	// Lines rendered by the failed-test formatter end in a status tag.
	taggedLineRe = regexp.MustCompile(`\[(fail|error)\]\s*$`)

	// Pytest-style summary lines.
	summaryLineRe = regexp.MustCompile(`^(FAILED|ERROR)\b`)

	// Exception class names (IndexError, ValueError, StopIteration, ...).
	exceptionRe = regexp.MustCompile(`\b([A-Z][A-Za-z0-9]*(?:Error|Exception))\b`)
)

// None reports that no recognizable failure signal was found.
func (s Signals) None() bool {
	return s.Failures == 0
}

// ExtractSignals derives failure counts and distinct exception types from
// free-form test output. It understands the formatter's one-line-per-test
// shape and degrades to coarser pytest-style markers for raw output. Text
// matching neither leaves the signals empty, which callers treat as an
// analysis fault.
func ExtractSignals(testFailure string) Signals {
	text := strings.TrimSpace(testFailure)
	if text == "" {
		return Signals{}
	}

	lines := strings.Split(text, "\n")

	var failures int
	types := make(map[string]bool)

	for _, line := range lines {
		if !taggedLineRe.MatchString(line) {
			continue
		}
		failures++
		if strings.HasSuffix(strings.TrimSpace(line), "[error]") {
			for _, m := range exceptionRe.FindAllStringSubmatch(line, -1) {
				types[m[1]] = true
			}
		}
	}

	if failures == 0 {
		for _, line := range lines {
			if summaryLineRe.MatchString(strings.TrimSpace(line)) {
				failures++
			}
		}
		for _, m := range exceptionRe.FindAllStringSubmatch(text, -1) {
			types[m[1]] = true
		}
	}

	// A bare traceback names its exception but no test; count it as one
	// crashing run.
	if failures == 0 && len(types) > 0 {
		failures = 1
	}

	sig := Signals{Failures: failures}
	for t := range types {
		sig.ErrorTypes = append(sig.ErrorTypes, t)
	}
	sort.Strings(sig.ErrorTypes)
	return sig
}
