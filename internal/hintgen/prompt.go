package hintgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/hintz/internal/strategy"
)

const tutorSystemPrompt = `You are a programming tutor helping a learner fix failing Python code.

Rules:
- Write one short, actionable hint (1-2 sentences).
- No code. Never include the corrected code or a full solution.
- Do not quote the failing tests verbatim.
- Follow the strategy guidance at the end of the request.`

// strategyInstructions conditions the hint on the selected tutoring approach.
var strategyInstructions = map[strategy.Strategy]string{
	strategy.Direct: "Provide a concise, actionable hint that points to the failure's " +
		"root cause without revealing the full solution or writing code.",
	strategy.Questions: "Ask 1-2 guiding questions that steer the learner toward the " +
		"issue without revealing the solution or writing code.",
	strategy.StepByStep: "Suggest only the first concrete step the learner should take. " +
		"Do not give the final solution or multiple steps.",
}

// buildHintMessage constructs the user message for one hint request.
func buildHintMessage(req Request, strat strategy.Strategy) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Problem:\n%s\n\n", strings.TrimSpace(req.Problem))
	fmt.Fprintf(&b, "Learner code:\n%s\n\n", strings.TrimSpace(req.LearnerCode))
	fmt.Fprintf(&b, "Failing tests:\n%s\n\n", strings.TrimSpace(req.TestFailure))
	fmt.Fprintf(&b, "Strategy:\n%s\n", strategyInstructions[strat])

	return b.String()
}
