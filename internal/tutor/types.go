package tutor

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/hintz/internal/analysis"
	"github.com/abhisek/hintz/internal/hintgen"
	"github.com/abhisek/hintz/internal/judge"
	"github.com/abhisek/hintz/internal/store"
	"github.com/abhisek/hintz/internal/strategy"
)

// ErrNoAttempts reports that every generation call failed before a single
// hint could be scored. The session has no result to return; the caller
// should treat the backing service as unavailable.
var ErrNoAttempts = errors.New("no hint attempt produced")

// TutoringRequest describes one failing attempt to tutor. ProblemID is
// carried through to persisted events and benchmark rows; it does not
// influence the generated hint.
type TutoringRequest struct {
	ProblemID   string
	Problem     string
	LearnerCode string
	TestFailure string
}

// HintAttempt is one scored generate+judge cycle. Attempts are appended
// in order and never mutated; AttemptIndex counts scored attempts from 0.
type HintAttempt struct {
	AttemptIndex int               `json:"attempt_index"`
	Strategy     strategy.Strategy `json:"strategy"`
	HintText     string            `json:"hint_text"`
	Score        int               `json:"score"`
	Reason       string            `json:"reason"`
}

// TutoringResult is the terminal artifact of one session.
//
// When Accepted is true, FinalHint and FinalScore come from the last
// attempt. Otherwise the plan was exhausted and they come from the
// highest-scoring attempt, earliest one on ties.
type TutoringResult struct {
	SessionID    string              `json:"session_id"`
	ProblemID    string              `json:"problem_id,omitempty"`
	FinalHint    string              `json:"final_hint"`
	FinalScore   int                 `json:"final_score"`
	FinalReason  string              `json:"final_reason"`
	StrategyUsed strategy.Strategy   `json:"strategy_used"`
	Accepted     bool                `json:"accepted"`
	Complexity   analysis.Complexity `json:"complexity"`
	Attempts     []HintAttempt       `json:"attempts"`
	Duration     time.Duration       `json:"duration_ns"`
}

// Analyzer classifies a failing attempt. Implementations recover their
// own faults and always return a usable assessment.
type Analyzer interface {
	Assess(ctx context.Context, problem, learnerCode, testFailure string) analysis.Assessment
}

// Planner orders the untried strategies for a complexity level.
type Planner interface {
	Plan(complexity analysis.Complexity, excluded map[strategy.Strategy]bool) []strategy.Strategy
}

// Generator produces a hint under a given strategy.
type Generator interface {
	Generate(ctx context.Context, req hintgen.Request, strat strategy.Strategy) (string, error)
}

// Scorer rates a hint against the failing attempt it addresses.
type Scorer interface {
	Score(ctx context.Context, req hintgen.Request, hint string) (judge.Verdict, error)
}

// EventSink receives session lifecycle and attempt records. store.EventRepo
// satisfies it; a nil sink disables persistence.
type EventSink interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
	AppendAttemptEvent(ctx context.Context, data store.AttemptEventData) error
}
