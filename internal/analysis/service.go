package analysis

import (
	"context"

	"github.com/abhisek/hintz/internal/llm"
)

// Service coordinates failure assessment. The deterministic signal
// heuristic decides whenever the failure text is parseable; an LLM
// assessor, when a provider is configured, covers the rest.
type Service struct {
	heuristic Heuristic
	assessor  *Assessor
}

// NewService creates an assessment service. If provider is nil, only the
// rule-based heuristic is used.
func NewService(provider llm.Provider) *Service {
	s := &Service{}
	if provider != nil {
		s.assessor = NewAssessor(provider, DefaultAssessorConfig())
	}
	return s
}

// Assess classifies a failing attempt. The signal heuristic decides
// whenever the failure text yields any recognizable signal. Only
// unrecognizable text goes to the LLM assessor, and faults there are
// recovered locally: complexity defaults to Moderate instead of
// propagating the failure to the caller.
func (s *Service) Assess(ctx context.Context, problem, learnerCode, testFailure string) Assessment {
	sig := ExtractSignals(testFailure)
	if !sig.None() || s.assessor == nil {
		return s.heuristic.fromSignals(sig)
	}

	a, err := s.assessor.Assess(ctx, problem, learnerCode, testFailure)
	if err != nil {
		return Assessment{
			Complexity:   Moderate,
			Rationale:    "assessment unavailable",
			AnalyzerName: "fallback",
		}
	}
	return a
}
