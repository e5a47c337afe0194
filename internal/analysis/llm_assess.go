package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/abhisek/hintz/internal/llm"
)

// AssessorConfig holds configuration for the LLM assessor.
type AssessorConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultAssessorConfig returns sensible defaults. Temperature 0 keeps the
// classification as repeatable as the backend allows.
func DefaultAssessorConfig() AssessorConfig {
	return AssessorConfig{
		MaxTokens:   256,
		Temperature: 0,
	}
}

// Assessor performs LLM-based complexity classification.
type Assessor struct {
	provider llm.Provider
	cfg      AssessorConfig
}

// NewAssessor creates an LLM-based assessor.
func NewAssessor(provider llm.Provider, cfg AssessorConfig) *Assessor {
	return &Assessor{provider: provider, cfg: cfg}
}

// assessOutput is the raw LLM response.
type assessOutput struct {
	Complexity string `json:"complexity"`
	Rationale  string `json:"rationale"`
}

// Assess sends the failing attempt to the LLM for classification.
func (a *Assessor) Assess(ctx context.Context, problem, learnerCode, testFailure string) (Assessment, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeErrorAnalysis)

	userMsg, err := buildAssessMessage(problem, learnerCode, testFailure)
	if err != nil {
		return Assessment{}, fmt.Errorf("build assessment prompt: %w", err)
	}

	llmReq := llm.Request{
		System: assessSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      AssessmentSchema,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	}

	resp, err := a.provider.Generate(ctx, llmReq)
	if err != nil {
		return Assessment{}, fmt.Errorf("LLM assessment failed: %w", err)
	}

	var raw assessOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return Assessment{}, fmt.Errorf("failed to parse assessment response: %w", err)
	}

	complexity := Complexity(raw.Complexity)
	if !complexity.Valid() {
		return Assessment{}, fmt.Errorf("unknown complexity level %q", raw.Complexity)
	}

	return Assessment{
		Complexity:   complexity,
		Rationale:    raw.Rationale,
		AnalyzerName: "llm",
	}, nil
}

const assessSystemPrompt = `You are an expert programming tutor triaging a learner's failing code. Classify how hard the failure is to untangle.

Levels:
- simple: one failing test with a single clear cause.
- moderate: a few failing tests sharing at most two error patterns.
- complex: many failing tests or several distinct error patterns.

Instructions:
- Choose exactly one level.
- Keep the rationale to one sentence.`

var assessUserTemplate = template.Must(template.New("assess").Parse(`Problem:
{{.Problem}}

Learner code:
{{.LearnerCode}}

Failing tests:
{{.TestFailure}}`))

func buildAssessMessage(problem, learnerCode, testFailure string) (string, error) {
	var buf bytes.Buffer
	err := assessUserTemplate.Execute(&buf, struct {
		Problem     string
		LearnerCode string
		TestFailure string
	}{problem, learnerCode, testFailure})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
