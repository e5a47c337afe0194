package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/hintz/internal/store"
)

// Outcome is one approach's scored hint for a record.
type Outcome struct {
	ModelName string `json:"model_name,omitempty"`
	Hint      string `json:"hint"`
	Score     int    `json:"score"`
	Reason    string `json:"reason"`
	Accepted  bool   `json:"accepted"`
	Attempts  int    `json:"attempts,omitempty"`
}

// Row is the benchmark output for one dataset record: every evaluated
// approach keyed by its name. Approaches without input for the record
// (no human hint, no fine-tuned model) are absent.
type Row struct {
	Split       string                `json:"split"`
	ProblemID   int                   `json:"problem_id"`
	AttemptID   int                   `json:"attempt_id"`
	Problem     string                `json:"problem"`
	LearnerCode string                `json:"learner_code"`
	TestFailure string                `json:"test_failure"`
	Outcomes    map[Approach]*Outcome `json:"outcomes"`
}

// ApproachSummary aggregates one approach across a benchmark run.
// Accepted counts hints that met the acceptance threshold. MeanAttempts
// is the average number of tutoring cycles; zero for single-shot
// approaches.
type ApproachSummary struct {
	Approach     Approach
	Count        int
	MeanScore    float64
	Accepted     int
	MeanAttempts float64
}

// Report is the terminal artifact of one benchmark run.
type Report struct {
	RunID      string
	Split      string
	Rows       []Row
	Summaries  []ApproachSummary
	StartedAt  time.Time
	FinishedAt time.Time
}

// buildReport sorts the accumulated rows and derives the per-approach
// aggregates. Rows arrive in completion order; output order is by
// problem then attempt so reruns diff cleanly.
func buildReport(runID, split string, rows []Row, startedAt, finishedAt time.Time) *Report {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ProblemID != rows[j].ProblemID {
			return rows[i].ProblemID < rows[j].ProblemID
		}
		return rows[i].AttemptID < rows[j].AttemptID
	})

	totals := make(map[Approach]*ApproachSummary)
	for _, row := range rows {
		for approach, out := range row.Outcomes {
			s := totals[approach]
			if s == nil {
				s = &ApproachSummary{Approach: approach}
				totals[approach] = s
			}
			s.Count++
			s.MeanScore += float64(out.Score)
			s.MeanAttempts += float64(out.Attempts)
			if out.Accepted {
				s.Accepted++
			}
		}
	}

	var summaries []ApproachSummary
	for _, approach := range AllApproaches {
		s := totals[approach]
		if s == nil {
			continue
		}
		s.MeanScore /= float64(s.Count)
		s.MeanAttempts /= float64(s.Count)
		summaries = append(summaries, *s)
	}

	return &Report{
		RunID:      runID,
		Split:      split,
		Rows:       rows,
		Summaries:  summaries,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
}

// WriteJSONL streams one JSON object per row.
func (r *Report) WriteJSONL(w io.Writer) error {
	enc := json.NewEncoder(w)
	for i := range r.Rows {
		if err := enc.Encode(&r.Rows[i]); err != nil {
			return fmt.Errorf("encode row %d: %w", i, err)
		}
	}
	return nil
}

// Render formats the per-approach score table for terminal output.
func (r *Report) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Average judge score (1-5), split %s, %d records:\n", r.Split, len(r.Rows))
	for _, s := range r.Summaries {
		detail := fmt.Sprintf("%d scored, %d accepted", s.Count, s.Accepted)
		if s.MeanAttempts > 0 {
			detail += fmt.Sprintf(", %.1f tries", s.MeanAttempts)
		}
		fmt.Fprintf(&b, "  %-18s %.2f  (%s)\n", s.Approach.Label(), s.MeanScore, detail)
	}
	return b.String()
}

// StoreData converts the report for snapshot persistence.
func (r *Report) StoreData() *store.BenchReportData {
	data := &store.BenchReportData{
		RunID:      r.RunID,
		Split:      r.Split,
		Records:    len(r.Rows),
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
	for _, s := range r.Summaries {
		data.Approaches = append(data.Approaches, store.ApproachSummaryData{
			Approach:     string(s.Approach),
			Count:        s.Count,
			MeanScore:    s.MeanScore,
			Accepted:     s.Accepted,
			MeanAttempts: s.MeanAttempts,
		})
	}
	return data
}
