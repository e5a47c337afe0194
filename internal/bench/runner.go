package bench

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/hintz/internal/dataset"
	"github.com/abhisek/hintz/internal/hintgen"
	"github.com/abhisek/hintz/internal/judge"
	"github.com/abhisek/hintz/internal/tutor"
)

// defaultWorkers bounds concurrent record evaluations. Each record can
// fan out to several model calls, so this stays modest.
const defaultWorkers = 4

// HintSource produces one direct hint per record without the agent loop.
// hintgen.Generator satisfies it.
type HintSource interface {
	Baseline(ctx context.Context, req hintgen.Request) (string, error)
	ModelID() string
}

// Agent runs a full tutoring session. tutor.Controller satisfies it.
type Agent interface {
	Run(ctx context.Context, req tutor.TutoringRequest) (*tutor.TutoringResult, error)
}

// Scorer judges hints. judge.Judge satisfies it.
type Scorer interface {
	Score(ctx context.Context, req hintgen.Request, hint string) (judge.Verdict, error)
}

// Config selects what a run evaluates and how hard it drives the
// backing services.
type Config struct {
	Approaches      []Approach // nil selects every available approach
	Workers         int        // concurrent record evaluations
	Limit           int        // cap on records, 0 = all
	AcceptThreshold int        // score counted as accepted
	OnRow           func(Row)  // called as each record completes
}

// Runner evaluates hint approaches over a dataset split.
type Runner struct {
	scorer     Scorer
	base       HintSource
	fineTuned  HintSource // nil when no fine-tuned model is configured
	agentBase  Agent
	agentFT    Agent // nil alongside fineTuned
	cfg        Config
	approaches []Approach
}

// NewRunner wires the evaluation collaborators. fineTuned and
// agentFineTuned may be nil; the matching approaches are then
// unavailable and selecting them explicitly is an error.
func NewRunner(scorer Scorer, base HintSource, fineTuned HintSource, agentBase Agent, agentFineTuned Agent, cfg Config) (*Runner, error) {
	if scorer == nil || base == nil || agentBase == nil {
		return nil, errors.New("scorer, base generator, and base agent are required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.AcceptThreshold <= 0 {
		cfg.AcceptThreshold = tutor.DefaultConfig().AcceptThreshold
	}

	r := &Runner{
		scorer:    scorer,
		base:      base,
		fineTuned: fineTuned,
		agentBase: agentBase,
		agentFT:   agentFineTuned,
		cfg:       cfg,
	}

	requested := cfg.Approaches
	if len(requested) == 0 {
		for _, a := range AllApproaches {
			if r.available(a) {
				requested = append(requested, a)
			}
		}
	}
	for _, a := range requested {
		if !a.Valid() {
			return nil, fmt.Errorf("unknown approach %q", a)
		}
		if !r.available(a) {
			return nil, fmt.Errorf("approach %q needs a fine-tuned model", a)
		}
	}
	r.approaches = requested
	return r, nil
}

func (r *Runner) available(a Approach) bool {
	switch a {
	case FineTuned:
		return r.fineTuned != nil
	case AgentFineTuned:
		return r.agentFT != nil
	}
	return true
}

// Approaches returns what this run evaluates, in report order.
func (r *Runner) Approaches() []Approach {
	return append([]Approach(nil), r.approaches...)
}

// Run evaluates every record on a bounded worker pool and aggregates a
// report. Rows accumulate append-only in completion order and are
// sorted afterwards. Any approach failure is systemic and aborts the
// whole run; in-flight evaluations are cancelled through the group
// context.
func (r *Runner) Run(ctx context.Context, split string, records []dataset.Record) (*Report, error) {
	startedAt := time.Now()
	if r.cfg.Limit > 0 && len(records) > r.cfg.Limit {
		records = records[:r.cfg.Limit]
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	var mu sync.Mutex
	rows := make([]Row, 0, len(records))

	for _, rec := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row, err := r.evalRecord(gctx, rec)
			if err != nil {
				return err
			}
			mu.Lock()
			rows = append(rows, row)
			mu.Unlock()
			if r.cfg.OnRow != nil {
				r.cfg.OnRow(row)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildReport(uuid.New().String(), split, rows, startedAt, time.Now()), nil
}

func (r *Runner) evalRecord(ctx context.Context, rec dataset.Record) (Row, error) {
	req := hintgen.Request{
		Problem:     rec.Problem,
		LearnerCode: rec.LearnerCode,
		TestFailure: rec.FailureText(),
	}
	row := Row{
		Split:       rec.Split,
		ProblemID:   rec.ProblemID,
		AttemptID:   rec.AttemptID,
		Problem:     rec.Problem,
		LearnerCode: rec.LearnerCode,
		TestFailure: req.TestFailure,
		Outcomes:    make(map[Approach]*Outcome),
	}

	for _, approach := range r.approaches {
		out, err := r.evalApproach(ctx, approach, rec, req)
		if err != nil {
			return Row{}, fmt.Errorf("%s on %s: %w", approach, rec.Key(), err)
		}
		if out != nil {
			row.Outcomes[approach] = out
		}
	}
	return row, nil
}

func (r *Runner) evalApproach(ctx context.Context, approach Approach, rec dataset.Record, req hintgen.Request) (*Outcome, error) {
	switch approach {
	case Human:
		// Records without a human hint contribute nothing here.
		if rec.HumanHint == "" {
			return nil, nil
		}
		return r.scoreDirect(ctx, req, rec.HumanHint, "")
	case Base:
		return r.generateAndScore(ctx, req, r.base)
	case FineTuned:
		return r.generateAndScore(ctx, req, r.fineTuned)
	case AgentBase:
		return r.runAgent(ctx, rec, req, r.agentBase, r.base.ModelID())
	case AgentFineTuned:
		return r.runAgent(ctx, rec, req, r.agentFT, r.fineTuned.ModelID())
	}
	return nil, fmt.Errorf("unknown approach %q", approach)
}

func (r *Runner) generateAndScore(ctx context.Context, req hintgen.Request, src HintSource) (*Outcome, error) {
	hint, err := src.Baseline(ctx, req)
	if err != nil {
		return nil, err
	}
	return r.scoreDirect(ctx, req, hint, src.ModelID())
}

func (r *Runner) scoreDirect(ctx context.Context, req hintgen.Request, hint, modelName string) (*Outcome, error) {
	v, err := r.scorer.Score(ctx, req, hint)
	if err != nil {
		var formatErr *judge.FormatError
		if !errors.As(err, &formatErr) {
			return nil, err
		}
		// Same downgrade the session loop applies.
		v = judge.Verdict{Score: 1, Reason: "judge output unparsable"}
	}
	return &Outcome{
		ModelName: modelName,
		Hint:      hint,
		Score:     v.Score,
		Reason:    v.Reason,
		Accepted:  v.Score >= r.cfg.AcceptThreshold,
	}, nil
}

func (r *Runner) runAgent(ctx context.Context, rec dataset.Record, req hintgen.Request, agent Agent, modelID string) (*Outcome, error) {
	res, err := agent.Run(ctx, tutor.TutoringRequest{
		ProblemID:   rec.Key(),
		Problem:     req.Problem,
		LearnerCode: req.LearnerCode,
		TestFailure: req.TestFailure,
	})
	if err != nil {
		return nil, err
	}
	return &Outcome{
		ModelName: modelID + " (agent)",
		Hint:      res.FinalHint,
		Score:     res.FinalScore,
		Reason:    res.FinalReason,
		Accepted:  res.Accepted,
		Attempts:  len(res.Attempts),
	}, nil
}
