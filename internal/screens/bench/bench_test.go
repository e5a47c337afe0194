package bench

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	runner "github.com/abhisek/hintz/internal/bench"
)

func keyMsg(s string) tea.KeyPressMsg {
	if s == "ctrl+c" {
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func testApproaches() []runner.Approach {
	return []runner.Approach{runner.Human, runner.Base, runner.AgentBase}
}

func rowMsg(pid int, scores map[runner.Approach]int) RowMsg {
	outcomes := make(map[runner.Approach]*runner.Outcome, len(scores))
	for approach, score := range scores {
		outcomes[approach] = &runner.Outcome{
			Hint:     "check the loop bound",
			Score:    score,
			Accepted: score >= 4,
		}
	}
	return RowMsg{Row: runner.Row{Split: "test", ProblemID: pid, AttemptID: 1, Outcomes: outcomes}}
}

func TestBenchScreen_TracksRunningMeans(t *testing.T) {
	s := New("test", 4, testApproaches(), nil)

	s.Update(rowMsg(2, map[runner.Approach]int{runner.Base: 3, runner.AgentBase: 5}))
	s.Update(rowMsg(7, map[runner.Approach]int{runner.Base: 5, runner.AgentBase: 5, runner.Human: 4}))

	if s.completed != 2 {
		t.Fatalf("completed = %d, want 2", s.completed)
	}

	base := s.tallies[runner.Base]
	if base == nil || base.count != 2 || base.scoreSum != 8 {
		t.Fatalf("base tally = %+v, want count 2 sum 8", base)
	}
	agent := s.tallies[runner.AgentBase]
	if agent.accepted != 2 {
		t.Errorf("agent accepted = %d, want 2", agent.accepted)
	}
	human := s.tallies[runner.Human]
	if human.count != 1 || human.accepted != 1 {
		t.Errorf("human tally = %+v, want count 1 accepted 1", human)
	}
}

func TestBenchScreen_RenderShowsProgressAndMeans(t *testing.T) {
	s := New("val", 4, testApproaches(), nil)
	s.Update(rowMsg(2, map[runner.Approach]int{runner.Base: 4}))

	out := s.render()

	if !strings.Contains(out, "val split") {
		t.Errorf("render missing split name:\n%s", out)
	}
	if !strings.Contains(out, "1/4") {
		t.Errorf("render missing record counter:\n%s", out)
	}
	if !strings.Contains(out, "4.00") {
		t.Errorf("render missing base running mean:\n%s", out)
	}
	if !strings.Contains(out, "waiting") {
		t.Errorf("render should mark approaches with no rows yet:\n%s", out)
	}
}

func TestBenchScreen_DoneQuitsWithReport(t *testing.T) {
	s := New("test", 1, testApproaches(), nil)

	report := &runner.Report{RunID: "r1", Split: "test"}
	_, cmd := s.Update(DoneMsg{Report: report})
	if cmd == nil {
		t.Fatal("expected quit command after DoneMsg")
	}

	got, err := s.Report()
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if got.RunID != "r1" {
		t.Errorf("report RunID = %q, want r1", got.RunID)
	}
}

func TestBenchScreen_DoneCarriesRunError(t *testing.T) {
	s := New("test", 1, testApproaches(), nil)

	boom := errors.New("judge unavailable")
	s.Update(DoneMsg{Err: boom})

	if _, err := s.Report(); !errors.Is(err, boom) {
		t.Fatalf("Report() error = %v, want %v", err, boom)
	}
}

func TestBenchScreen_CancelKeyStopsOnce(t *testing.T) {
	calls := 0
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New("test", 1, testApproaches(), func() {
		calls++
		cancel()
	})

	s.Update(keyMsg("ctrl+c"))
	s.Update(keyMsg("ctrl+c"))

	if calls != 1 {
		t.Fatalf("cancel called %d times, want 1", calls)
	}
	if ctx.Err() == nil {
		t.Fatal("context should be cancelled")
	}
	if !strings.Contains(s.render(), "stopping") {
		t.Error("render should show the stopping notice")
	}
}
