package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/hintz/internal/store"
)

// maxLoggedBody caps stored request/response bodies. Hint prompts embed
// the full problem statement and learner code, which can run long; the
// event log keeps enough to debug a session without ballooning the DB.
const maxLoggedBody = 32 * 1024

// loggingProvider records every LLM call as an immutable event:
// purpose, model, latency, token usage, and the (capped) bodies.
// hintz llm list/view/stats read these back.
type loggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
}

// WithLogging decorates p so every Generate call is appended to the
// event log through repo.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	return &loggingProvider{inner: p, eventRepo: repo}
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.inner.ModelID(),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: clipBody(renderRequest(req)),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = clipBody(string(resp.Content))
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// A failed append must not fail the request itself.
	if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", logErr)
	}

	return resp, err
}

func (l *loggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// renderRequest flattens a request into the readable form the event log
// stores: system prompt, then each message under its role, then the
// schema, section per block.
func renderRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}

	return b.String()
}

func clipBody(s string) string {
	if len(s) <= maxLoggedBody {
		return s
	}
	return s[:maxLoggedBody] + "\n[clipped]"
}
