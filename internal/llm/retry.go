package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retryProvider decorates a Provider with transport-level retries:
// exponential backoff with jitter for transient faults. This layer
// retries the same call; strategy-level retries (a different hint
// strategy after a low score) live in the tutoring loop and never
// reach down here.
type retryProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry decorates p with the backoff policy in cfg.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retryProvider{inner: p, cfg: cfg}
}

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := r.cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	// A schema-violating reply gets one regeneration. More than that
	// and the model is unlikely to ever satisfy the schema.
	invalidBudget := 1

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, r.wait(attempt-1, lastErr)); err != nil {
				return nil, err
			}
		}

		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err, &invalidBudget) {
			return nil, err
		}
	}
	return nil, lastErr
}

func (r *retryProvider) ModelID() string {
	return r.inner.ModelID()
}

// retryable reports whether the call is worth repeating. Context errors
// and token-limit overruns never are; everything else is presumed
// transient.
func retryable(err error, invalidBudget *int) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *invalidBudget == 0 {
			return false
		}
		*invalidBudget--
		return true
	}

	return true
}

// wait computes the backoff before the attempt following attempt n.
// Rate-limit replies that carry a server-set delay use it verbatim.
func (r *retryProvider) wait(n int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(n))
	d = math.Min(d, float64(r.cfg.MaxWait))
	d *= 1 + 0.2*(2*rand.Float64()-1)
	return time.Duration(math.Max(d, 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
