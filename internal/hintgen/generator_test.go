package hintgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/hintz/internal/llm"
	"github.com/abhisek/hintz/internal/strategy"
)

func testRequest() Request {
	return Request{
		Problem:     "Write a function that reverses a string.",
		LearnerCode: "def reverse_string(s):\n    return s[1::-1]",
		TestFailure: `test_rev: reverse_string("abc"): expected 'cba', got 'ba' [fail]`,
	}
}

func TestGenerator_ProducesSanitizedHint(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("Hint: Look at where your slice starts. Does it cover the whole string?"),
	})
	g := New(mock, DefaultConfig())

	hint, err := g.Generate(context.Background(), testRequest(), strategy.Direct)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if strings.HasPrefix(hint, "Hint:") {
		t.Errorf("hint label not stripped: %q", hint)
	}
	if !strings.Contains(hint, "slice") {
		t.Errorf("unexpected hint content: %q", hint)
	}
}

func TestGenerator_PromptCarriesRequestAndStrategy(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("Check the slice bounds.")})
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), testRequest(), strategy.Questions)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Calls))
	}
	call := mock.Calls[0]
	msg := call.Messages[0].Content

	if !strings.Contains(msg, "reverses a string") {
		t.Error("prompt missing problem text")
	}
	if !strings.Contains(msg, "s[1::-1]") {
		t.Error("prompt missing learner code")
	}
	if !strings.Contains(msg, "[fail]") {
		t.Error("prompt missing failure text")
	}
	if !strings.Contains(msg, "guiding questions") {
		t.Error("prompt missing questions strategy instruction")
	}
	if call.Schema != nil {
		t.Error("hint generation must not request structured output")
	}
	if call.MaxTokens != 128 {
		t.Errorf("max tokens = %d, want 128", call.MaxTokens)
	}
}

func TestGenerator_StrategyConditionsPrompt(t *testing.T) {
	prompts := make(map[strategy.Strategy]string)
	for _, strat := range strategy.All {
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("A hint.")})
		g := New(mock, DefaultConfig())
		if _, err := g.Generate(context.Background(), testRequest(), strat); err != nil {
			t.Fatalf("Generate(%s) failed: %v", strat, err)
		}
		prompts[strat] = mock.Calls[0].Messages[0].Content
	}

	if prompts[strategy.Direct] == prompts[strategy.Questions] {
		t.Error("direct and questions prompts are identical")
	}
	if prompts[strategy.Questions] == prompts[strategy.StepByStep] {
		t.Error("questions and step_by_step prompts are identical")
	}
	if !strings.Contains(prompts[strategy.StepByStep], "first concrete step") {
		t.Error("step_by_step prompt missing its instruction")
	}
}

func TestGenerator_NeverEmitsFencedCode(t *testing.T) {
	// The model leaks the corrected slice inside a code fence; the
	// sanitizer must drop it.
	leaky := "Your slice is reversed from index 1.\n```python\nreturn s[::-1]\n```"
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(leaky)})
	g := New(mock, DefaultConfig())

	hint, err := g.Generate(context.Background(), testRequest(), strategy.Direct)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if strings.Contains(hint, "s[::-1]") {
		t.Errorf("hint leaked the corrected code: %q", hint)
	}
	if strings.Contains(hint, "```") {
		t.Errorf("hint contains a code fence: %q", hint)
	}
}

func TestGenerator_WrapsProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("quota exceeded")})
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), testRequest(), strategy.StepByStep)
	if err == nil {
		t.Fatal("expected error when provider fails")
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if genErr.Strategy != strategy.StepByStep {
		t.Errorf("error strategy = %q, want step_by_step", genErr.Strategy)
	}
}

func TestGenerator_RegeneratesOnceOnUnusableReply(t *testing.T) {
	// First reply is pure code and sanitizes to nothing; the retry
	// produces a usable hint.
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("```python\nreturn s[::-1]\n```")},
		llm.MockResponse{Content: json.RawMessage("Look at where your slice starts.")},
	)
	g := New(mock, DefaultConfig())

	hint, err := g.Generate(context.Background(), testRequest(), strategy.Direct)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(hint, "slice") {
		t.Errorf("unexpected hint: %q", hint)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", mock.CallCount())
	}
}

func TestGenerator_EmptyAfterSanitizeIsError(t *testing.T) {
	empty := llm.MockResponse{Content: json.RawMessage("```python\nreturn s[::-1]\n```")}
	mock := llm.NewMockProvider(empty, empty)
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), testRequest(), strategy.Direct)
	if err == nil {
		t.Fatal("expected error for hint that sanitizes to empty")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2 (one regeneration)", mock.CallCount())
	}
}

func TestRequest_Validate(t *testing.T) {
	req := testRequest()
	if err := req.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing problem", func(r *Request) { r.Problem = "" }},
		{"missing code", func(r *Request) { r.LearnerCode = "" }},
		{"missing failure", func(r *Request) { r.TestFailure = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRequest()
			tt.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
