package analysis

import "github.com/abhisek/hintz/internal/llm"

// AssessmentSchema defines the JSON schema for LLM error-assessment responses.
var AssessmentSchema = &llm.Schema{
	Name:        "error-assessment",
	Description: "Complexity classification of a failing code attempt",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"complexity": map[string]any{
				"type":        "string",
				"enum":        []any{"simple", "moderate", "complex"},
				"description": "How hard the failure is to untangle",
			},
			"rationale": map[string]any{
				"type":        "string",
				"description": "Brief one-sentence explanation of the classification",
			},
		},
		"required":             []any{"complexity", "rationale"},
		"additionalProperties": false,
	},
}
