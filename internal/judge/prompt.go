package judge

import (
	"fmt"
	"strings"

	"github.com/abhisek/hintz/internal/hintgen"
)

const judgeSystemPrompt = `You are a strict evaluator of Python tutoring hints.
- Judge the hint's pedagogical value and effectiveness for helping a learner understand and fix their code.
- Consider both direct guidance and guided questioning approaches as valid tutoring methods.
- Penalize hints that include code, reveal full solutions, are completely unrelated to the failures, or are misleading.
- Value hints that guide learners to discover solutions through questions or clear explanations.
- Be concise and deterministic.

Scoring rubric (1-5):
1 = Useless/misleading/contains code or solution reveal/irrelevant to the error.
2 = Vague or partially incorrect; minimal pedagogical value.
3 = Somewhat helpful but incomplete; provides some guidance or raises relevant questions.
4 = Clear and pedagogically sound; guides learner effectively through questions or explanations.
5 = Excellent pedagogical approach; very clear guidance that helps learner understand and discover the solution.`

// buildJudgeMessage constructs the user message for one verdict request.
// Empty fields are stubbed so the judge never sees a blank section.
func buildJudgeMessage(req hintgen.Request, hint string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Problem:\n%s\n\n", orPlaceholder(req.Problem, "(omitted)"))
	fmt.Fprintf(&b, "Learner code:\n%s\n\n", orPlaceholder(req.LearnerCode, "(omitted)"))
	fmt.Fprintf(&b, "Failing tests:\n%s\n\n", orPlaceholder(req.TestFailure, "(omitted)"))
	fmt.Fprintf(&b, "Hint to evaluate:\n%s\n\n", orPlaceholder(hint, "(empty)"))

	b.WriteString("Return your answer in EXACTLY two lines in this format:\n")
	b.WriteString("SCORE: <integer 1-5>\n")
	b.WriteString("REASON: <one short sentence explaining the score; no code, no solution>\n")

	return b.String()
}

func orPlaceholder(s, placeholder string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return placeholder
	}
	return s
}
