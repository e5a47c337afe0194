package store

import (
	"context"
	"time"
)

// QueryOpts narrows an event query by window and page size.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ApproachSummaryData is the serialized per-approach aggregate of a
// benchmark run.
type ApproachSummaryData struct {
	Approach     string  `json:"approach"`
	Count        int     `json:"count"`
	MeanScore    float64 `json:"mean_score"`
	Accepted     int     `json:"accepted"`
	MeanAttempts float64 `json:"mean_attempts,omitempty"`
}

// BenchReportData is the serialized summary of one benchmark run.
type BenchReportData struct {
	RunID      string                `json:"run_id"`
	Split      string                `json:"split"`
	Records    int                   `json:"records"`
	Approaches []ApproachSummaryData `json:"approaches"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt time.Time             `json:"finished_at"`
}

// SnapshotData holds aggregate state that is cheaper to read back than to
// recompute from the event log.
type SnapshotData struct {
	Version   int              `json:"version"`
	LastBench *BenchReportData `json:"last_bench,omitempty"`
}

// Snapshot represents a point-in-time capture of aggregate state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages aggregate snapshots.
type SnapshotRepo interface {
	// Save appends a snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the newest snapshot, nil when none were saved.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune drops all snapshots older than the keep newest.
	Prune(ctx context.Context, keep int) error
}

// LLMRequestEventData is the write model for one LLM call record.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is the read model for a persisted LLM request event.
type LLMEvent struct {
	ID           int
	Sequence     int64
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// SessionEventData captures a tutoring session lifecycle event.
type SessionEventData struct {
	SessionID    string
	Action       string // "start", "end", or "cancel"
	ProblemID    string
	Complexity   string
	Accepted     bool
	FinalScore   int
	AttemptCount int
	DurationMs   int64
	Plan         []string
}

// AttemptEventData captures one scored hint attempt.
type AttemptEventData struct {
	SessionID    string
	AttemptIndex int
	Strategy     string
	Score        int
	HintText     string
	JudgeReason  string
}

// SessionStats aggregates completed tutoring sessions for reporting.
type SessionStats struct {
	Sessions     int
	Accepted     int
	MeanScore    float64
	MeanAttempts float64
	ByComplexity map[string]int
	ByStrategy   map[string]StrategyStats
}

// StrategyStats aggregates scored attempts for one strategy.
type StrategyStats struct {
	Attempts  int
	MeanScore float64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records one LLM call, successful or not.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events newest-first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event by ID, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendSessionEvent records a session lifecycle event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAttemptEvent records a scored hint attempt.
	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error

	// TutoringStats aggregates completed sessions and their attempts.
	TutoringStats(ctx context.Context) (*SessionStats, error)
}
