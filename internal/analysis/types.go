package analysis

// Complexity classifies how hard a failing attempt is to untangle.
type Complexity string

const (
	Simple   Complexity = "simple"
	Moderate Complexity = "moderate"
	Complex  Complexity = "complex"
)

// Valid reports whether c is one of the three known levels.
func (c Complexity) Valid() bool {
	switch c {
	case Simple, Moderate, Complex:
		return true
	}
	return false
}

// Assessment is the output of classifying a failing attempt.
type Assessment struct {
	Complexity   Complexity
	Rationale    string // LLM reasoning (empty for rule-based)
	AnalyzerName string // Which analyzer produced this result
}
