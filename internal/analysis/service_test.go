package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/hintz/internal/llm"
)

// No test markers, no exception names: the signal extractor gets nothing.
const opaqueFailure = "the output has all the right words in the wrong order"

func TestService_HeuristicOnly(t *testing.T) {
	s := NewService(nil)

	got := s.Assess(context.Background(), testProblem, testCode, testFailure)
	if got.Complexity != Moderate {
		t.Errorf("complexity = %q, want %q", got.Complexity, Moderate)
	}
	if got.AnalyzerName != "heuristic" {
		t.Errorf("analyzer = %q, want heuristic", got.AnalyzerName)
	}
}

func TestService_HeuristicWinsWhenSignalsExist(t *testing.T) {
	resp := json.RawMessage(`{"complexity":"complex","rationale":"should not be consulted"}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: resp})
	s := NewService(mock)

	got := s.Assess(context.Background(), testProblem, testCode, testFailure)
	if got.AnalyzerName != "heuristic" {
		t.Errorf("analyzer = %q, want heuristic", got.AnalyzerName)
	}
	if mock.CallCount() != 0 {
		t.Errorf("LLM called %d times for recognizable failure text", mock.CallCount())
	}
}

func TestService_LLMHandlesOpaqueFailure(t *testing.T) {
	resp := json.RawMessage(`{"complexity":"complex","rationale":"Several unrelated failures"}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: resp})
	s := NewService(mock)

	got := s.Assess(context.Background(), testProblem, testCode, opaqueFailure)
	if got.Complexity != Complex {
		t.Errorf("complexity = %q, want %q", got.Complexity, Complex)
	}
	if got.AnalyzerName != "llm" {
		t.Errorf("analyzer = %q, want llm", got.AnalyzerName)
	}
}

func TestService_FallsBackToModerateOnFault(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("unreachable")})
	s := NewService(mock)

	got := s.Assess(context.Background(), testProblem, testCode, opaqueFailure)
	if got.Complexity != Moderate {
		t.Errorf("complexity = %q, want %q on fault", got.Complexity, Moderate)
	}
	if got.AnalyzerName != "fallback" {
		t.Errorf("analyzer = %q, want fallback", got.AnalyzerName)
	}
}

func TestService_OpaqueFailureWithoutAssessor(t *testing.T) {
	s := NewService(nil)

	got := s.Assess(context.Background(), testProblem, testCode, opaqueFailure)
	if got.Complexity != Moderate {
		t.Errorf("complexity = %q, want %q", got.Complexity, Moderate)
	}
}
