package tutor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/hintz/internal/analysis"
	"github.com/abhisek/hintz/internal/hintgen"
	"github.com/abhisek/hintz/internal/judge"
	"github.com/abhisek/hintz/internal/store"
	"github.com/abhisek/hintz/internal/strategy"
)

// Config tunes session termination.
type Config struct {
	// AcceptThreshold is the minimum judge score that ends a session with
	// an accepted hint.
	AcceptThreshold int
}

// DefaultConfig returns the standard session settings.
func DefaultConfig() Config {
	return Config{AcceptThreshold: 4}
}

// Controller runs the analyze -> plan -> generate -> judge loop for one
// failing attempt at a time. A Controller is safe for concurrent use; all
// per-session state lives inside the Run call.
type Controller struct {
	analyzer  Analyzer
	planner   Planner
	generator Generator
	scorer    Scorer
	events    EventSink
	cfg       Config
}

// NewController wires the session collaborators. A nil events sink
// disables persistence; a zero AcceptThreshold falls back to the default.
func NewController(analyzer Analyzer, planner Planner, generator Generator, scorer Scorer, events EventSink, cfg Config) *Controller {
	if cfg.AcceptThreshold <= 0 {
		cfg.AcceptThreshold = DefaultConfig().AcceptThreshold
	}
	return &Controller{
		analyzer:  analyzer,
		planner:   planner,
		generator: generator,
		scorer:    scorer,
		events:    events,
		cfg:       cfg,
	}
}

// session is the mutable per-session state threaded through the control
// loop. Each Run call owns exactly one; nothing is shared across sessions.
type session struct {
	id         string
	req        TutoringRequest
	assessment analysis.Assessment
	excluded   map[strategy.Strategy]bool
	plan       []strategy.Strategy
	attempts   []HintAttempt
	lastGenErr error
	startedAt  time.Time
}

func newSession(req TutoringRequest) *session {
	return &session{
		id:        uuid.New().String(),
		req:       req,
		excluded:  make(map[strategy.Strategy]bool),
		startedAt: time.Now(),
	}
}

func (s *session) record(strat strategy.Strategy, hint string, v judge.Verdict) HintAttempt {
	att := HintAttempt{
		AttemptIndex: len(s.attempts),
		Strategy:     strat,
		HintText:     hint,
		Score:        v.Score,
		Reason:       v.Reason,
	}
	s.attempts = append(s.attempts, att)
	return att
}

// best returns the highest-scoring attempt, keeping the earliest on ties.
func (s *session) best() HintAttempt {
	best := s.attempts[0]
	for _, a := range s.attempts[1:] {
		if a.Score > best.Score {
			best = a
		}
	}
	return best
}

func (s *session) result(final HintAttempt, accepted bool) *TutoringResult {
	return &TutoringResult{
		SessionID:    s.id,
		ProblemID:    s.req.ProblemID,
		FinalHint:    final.HintText,
		FinalScore:   final.Score,
		FinalReason:  final.Reason,
		StrategyUsed: final.Strategy,
		Accepted:     accepted,
		Complexity:   s.assessment.Complexity,
		Attempts:     s.attempts,
		Duration:     time.Since(s.startedAt),
	}
}

// Run tutors one failing attempt to completion.
//
// The assessment happens once and is cached for the session. Each cycle
// pops the head of the strategy plan, generates a hint, judges it, and
// either accepts (score at or above the threshold) or excludes the tried
// strategy and re-plans. A failed generation call consumes its strategy
// slot without a scored attempt. When the plan is exhausted the result
// carries the best attempt seen; if no attempt was ever scored, Run
// returns ErrNoAttempts wrapping the last generation failure.
//
// Cancellation aborts the session with ctx's error and no partial result.
func (c *Controller) Run(ctx context.Context, req TutoringRequest) (*TutoringResult, error) {
	genReq := hintgen.Request{
		Problem:     req.Problem,
		LearnerCode: req.LearnerCode,
		TestFailure: req.TestFailure,
	}
	if err := genReq.Validate(); err != nil {
		return nil, err
	}

	s := newSession(req)
	s.assessment = c.analyzer.Assess(ctx, req.Problem, req.LearnerCode, req.TestFailure)
	s.plan = c.planner.Plan(s.assessment.Complexity, s.excluded)

	c.emitStart(ctx, s)

	// Each cycle consumes one strategy, so the initial plan length bounds
	// the loop regardless of judge behavior.
	budget := len(s.plan)
	for cycle := 0; cycle < budget && len(s.plan) > 0; cycle++ {
		if err := ctx.Err(); err != nil {
			c.emitCancel(s)
			return nil, err
		}

		strat := s.plan[0]
		s.excluded[strat] = true

		hint, err := c.generator.Generate(ctx, genReq, strat)
		if err != nil {
			if cause := cancelCause(ctx, err); cause != nil {
				c.emitCancel(s)
				return nil, cause
			}
			s.lastGenErr = err
			s.plan = c.planner.Plan(s.assessment.Complexity, s.excluded)
			continue
		}

		verdict, err := c.scorer.Score(ctx, genReq, hint)
		if err != nil {
			var formatErr *judge.FormatError
			if errors.As(err, &formatErr) {
				// Judge retries are exhausted; record the attempt at the
				// floor score so the session can still terminate.
				verdict = judge.Verdict{Score: 1, Reason: "judge output unparsable"}
			} else {
				c.emitCancel(s)
				if cause := cancelCause(ctx, err); cause != nil {
					return nil, cause
				}
				return nil, fmt.Errorf("judging hint: %w", err)
			}
		}

		att := s.record(strat, hint, verdict)
		c.emitAttempt(ctx, s, att)

		if att.Score >= c.cfg.AcceptThreshold {
			res := s.result(att, true)
			c.emitEnd(ctx, s, res)
			return res, nil
		}

		s.plan = c.planner.Plan(s.assessment.Complexity, s.excluded)
	}

	if len(s.attempts) == 0 {
		c.emitCancel(s)
		if s.lastGenErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoAttempts, s.lastGenErr)
		}
		return nil, ErrNoAttempts
	}

	res := s.result(s.best(), false)
	c.emitEnd(ctx, s, res)
	return res, nil
}

// cancelCause reports the cancellation behind err, if any, so aborts are
// distinguished from service faults.
func cancelCause(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func (c *Controller) emitStart(ctx context.Context, s *session) {
	if c.events == nil {
		return
	}
	names := make([]string, len(s.plan))
	for i, st := range s.plan {
		names[i] = string(st)
	}
	_ = c.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:  s.id,
		Action:     "start",
		ProblemID:  s.req.ProblemID,
		Complexity: string(s.assessment.Complexity),
		Plan:       names,
	})
}

func (c *Controller) emitAttempt(ctx context.Context, s *session, att HintAttempt) {
	if c.events == nil {
		return
	}
	_ = c.events.AppendAttemptEvent(ctx, store.AttemptEventData{
		SessionID:    s.id,
		AttemptIndex: att.AttemptIndex,
		Strategy:     string(att.Strategy),
		Score:        att.Score,
		HintText:     att.HintText,
		JudgeReason:  att.Reason,
	})
}

func (c *Controller) emitEnd(ctx context.Context, s *session, res *TutoringResult) {
	if c.events == nil {
		return
	}
	_ = c.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:    s.id,
		Action:       "end",
		ProblemID:    s.req.ProblemID,
		Complexity:   string(s.assessment.Complexity),
		Accepted:     res.Accepted,
		FinalScore:   res.FinalScore,
		AttemptCount: len(res.Attempts),
		DurationMs:   res.Duration.Milliseconds(),
	})
}

func (c *Controller) emitCancel(s *session) {
	if c.events == nil {
		return
	}
	// The session ctx may already be done; the abort record still gets
	// written.
	_ = c.events.AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID:    s.id,
		Action:       "cancel",
		ProblemID:    s.req.ProblemID,
		Complexity:   string(s.assessment.Complexity),
		AttemptCount: len(s.attempts),
		DurationMs:   time.Since(s.startedAt).Milliseconds(),
	})
}
