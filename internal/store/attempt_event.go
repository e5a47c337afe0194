package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendAttemptEvent(ctx context.Context, data AttemptEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.AttemptEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetAttemptIndex(data.AttemptIndex).
		SetStrategy(data.Strategy).
		SetScore(data.Score).
		SetHintText(data.HintText).
		SetJudgeReason(data.JudgeReason).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}
