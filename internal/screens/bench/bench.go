package bench

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	runner "github.com/abhisek/hintz/internal/bench"
	"github.com/abhisek/hintz/internal/ui/components"
	"github.com/abhisek/hintz/internal/ui/layout"
	"github.com/abhisek/hintz/internal/ui/theme"
)

// RowMsg reports one finished benchmark record. The runner's OnRow callback
// sends it through Program.Send from a worker goroutine.
type RowMsg struct {
	Row runner.Row
}

// DoneMsg carries the final report once the run ends.
type DoneMsg struct {
	Report *runner.Report
	Err    error
}

// tally holds per-approach running aggregates.
type tally struct {
	count    int
	scoreSum int
	accepted int
}

// BenchScreen renders live progress of a benchmark run: a progress bar over
// records plus running per-approach means.
type BenchScreen struct {
	split      string
	total      int
	approaches []runner.Approach
	cancel     context.CancelFunc

	spin      components.Spinner
	width     int
	completed int
	tallies   map[runner.Approach]*tally
	report    *runner.Report
	err       error
	stopping  bool
	startedAt time.Time
}

// New creates the progress model for a run over total records.
func New(split string, total int, approaches []runner.Approach, cancel context.CancelFunc) *BenchScreen {
	return &BenchScreen{
		split:      split,
		total:      total,
		approaches: approaches,
		cancel:     cancel,
		spin:       components.NewSpinner(),
		width:      layout.DefaultWidth,
		tallies:    make(map[runner.Approach]*tally),
		startedAt:  time.Now(),
	}
}

// Report returns the final report and run error after the program exits.
func (s *BenchScreen) Report() (*runner.Report, error) {
	return s.report, s.err
}

func (s *BenchScreen) Init() tea.Cmd {
	return s.spin.Init()
}

func (s *BenchScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			// First press cancels the run; the runner drains and sends
			// DoneMsg with the context error.
			if !s.stopping {
				s.stopping = true
				if s.cancel != nil {
					s.cancel()
				}
			}
		}
		return s, nil

	case RowMsg:
		s.completed++
		for approach, out := range msg.Row.Outcomes {
			t := s.tallies[approach]
			if t == nil {
				t = &tally{}
				s.tallies[approach] = t
			}
			t.count++
			t.scoreSum += out.Score
			if out.Accepted {
				t.accepted++
			}
		}
		return s, nil

	case DoneMsg:
		s.report = msg.Report
		s.err = msg.Err
		return s, tea.Quit
	}

	var cmd tea.Cmd
	s.spin, cmd = s.spin.Update(msg)
	return s, cmd
}

func (s *BenchScreen) View() tea.View {
	v := tea.NewView("")
	v.SetContent(s.render())
	return v
}

func (s *BenchScreen) render() string {
	var b strings.Builder

	headline := fmt.Sprintf("Benchmark — %s split, %d records", s.split, s.total)
	if s.stopping {
		headline += "  (stopping...)"
	}
	b.WriteString(s.spin.View() + " " + theme.Title.Render(headline))
	b.WriteString("\n\n")

	width := s.width
	if width > layout.DefaultWidth {
		width = layout.DefaultWidth
	}

	percent := 0.0
	if s.total > 0 {
		percent = float64(s.completed) / float64(s.total)
	}
	bar := components.NewProgressBar(fmt.Sprintf("%d/%d", s.completed, s.total), percent, true, width-2)
	b.WriteString(" " + bar.View())
	b.WriteString("\n\n")

	for _, approach := range s.approaches {
		b.WriteString("  " + layout.KeyValue(approach.Label(), s.tallyLine(approach), 18))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Dim.Render(fmt.Sprintf("  elapsed %s", time.Since(s.startedAt).Round(time.Second))))
	b.WriteString("\n")

	return b.String()
}

func (s *BenchScreen) tallyLine(approach runner.Approach) string {
	t := s.tallies[approach]
	if t == nil || t.count == 0 {
		return theme.Dim.Render("waiting")
	}
	mean := float64(t.scoreSum) / float64(t.count)
	return fmt.Sprintf("%s  %s",
		theme.ScoreStyle(int(mean+0.5)).Render(fmt.Sprintf("%.2f", mean)),
		theme.Subtitle.Render(fmt.Sprintf("(%d scored, %d accepted)", t.count, t.accepted)),
	)
}
