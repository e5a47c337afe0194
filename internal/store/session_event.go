package store

import (
	"context"
	"fmt"

	"github.com/abhisek/hintz/ent"
	"github.com/abhisek/hintz/ent/attemptevent"
	"github.com/abhisek/hintz/ent/sessionevent"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	builder := r.client.SessionEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetAction(data.Action).
		SetProblemID(data.ProblemID).
		SetComplexity(data.Complexity).
		SetAccepted(data.Accepted).
		SetFinalScore(data.FinalScore).
		SetAttemptCount(data.AttemptCount).
		SetDurationMs(data.DurationMs)

	if len(data.Plan) > 0 {
		builder = builder.SetPlan(data.Plan)
	}

	_, err = builder.Save(ctx)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

// TutoringStats aggregates completed sessions plus their scored attempts.
func (r *eventRepo) TutoringStats(ctx context.Context) (*SessionStats, error) {
	stats := &SessionStats{
		ByComplexity: make(map[string]int),
		ByStrategy:   make(map[string]StrategyStats),
	}

	ends, err := r.client.SessionEvent.Query().
		Where(sessionevent.Action("end")).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query session ends: %w", err)
	}

	var scoreSum, attemptSum int
	for _, e := range ends {
		stats.Sessions++
		if e.Accepted {
			stats.Accepted++
		}
		scoreSum += e.FinalScore
		attemptSum += e.AttemptCount
	}
	if stats.Sessions > 0 {
		stats.MeanScore = float64(scoreSum) / float64(stats.Sessions)
		stats.MeanAttempts = float64(attemptSum) / float64(stats.Sessions)
	}

	starts, err := r.client.SessionEvent.Query().
		Where(sessionevent.Action("start")).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query session starts: %w", err)
	}
	for _, e := range starts {
		if e.Complexity != "" {
			stats.ByComplexity[e.Complexity]++
		}
	}

	var rows []struct {
		Strategy string  `json:"strategy"`
		Attempts int     `json:"attempts"`
		Mean     float64 `json:"mean_score"`
	}
	err = r.client.AttemptEvent.Query().
		GroupBy(attemptevent.FieldStrategy).
		Aggregate(
			ent.As(ent.Count(), "attempts"),
			ent.As(ent.Mean(attemptevent.FieldScore), "mean_score"),
		).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("aggregate attempts by strategy: %w", err)
	}
	for _, row := range rows {
		stats.ByStrategy[row.Strategy] = StrategyStats{
			Attempts:  row.Attempts,
			MeanScore: row.Mean,
		}
	}

	return stats, nil
}
