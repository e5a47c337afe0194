package analysis

import "fmt"

// Heuristic classifies failures from extracted signals alone. It is fully
// deterministic: identical failure text yields identical assessments.
type Heuristic struct{}

func (Heuristic) Name() string { return "heuristic" }

// Assess derives complexity from the failure text. A single failure with a
// single error pattern is simple; up to three failures spanning at most two
// error patterns is moderate; anything beyond that is complex.
func (h Heuristic) Assess(testFailure string) Assessment {
	return h.fromSignals(ExtractSignals(testFailure))
}

func (h Heuristic) fromSignals(sig Signals) Assessment {
	return Assessment{
		Complexity:   classify(sig),
		Rationale:    describeSignals(sig),
		AnalyzerName: h.Name(),
	}
}

func classify(sig Signals) Complexity {
	switch {
	case sig.None():
		return Moderate
	case sig.Failures == 1 && len(sig.ErrorTypes) == 1:
		return Simple
	case sig.Failures <= 3 && len(sig.ErrorTypes) <= 2:
		return Moderate
	default:
		return Complex
	}
}

func describeSignals(sig Signals) string {
	if sig.Failures == 0 {
		return "no failing tests detected"
	}
	return fmt.Sprintf("%d failing test(s), %d distinct error type(s)", sig.Failures, len(sig.ErrorTypes))
}
