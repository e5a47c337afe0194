package bench

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func sampleReport() *Report {
	rows := []Row{
		{
			Split: "test", ProblemID: 10, AttemptID: 2,
			Problem: "p", LearnerCode: "c", TestFailure: "t [fail]",
			Outcomes: map[Approach]*Outcome{
				Base: {ModelName: "qwen-base", Hint: "try again", Score: 2, Reason: "vague"},
			},
		},
		{
			Split: "test", ProblemID: 10, AttemptID: 1,
			Problem: "p", LearnerCode: "c", TestFailure: "t [fail]",
			Outcomes: map[Approach]*Outcome{
				Base:      {ModelName: "qwen-base", Hint: "look closer", Score: 4, Accepted: true},
				AgentBase: {ModelName: "qwen-base (agent)", Hint: "agent hint", Score: 5, Accepted: true, Attempts: 2},
			},
		},
	}
	return buildReport("run-1", "test", rows, time.Now(), time.Now())
}

func TestBuildReport_SortsRowsAndAggregates(t *testing.T) {
	report := sampleReport()

	if report.Rows[0].AttemptID != 1 || report.Rows[1].AttemptID != 2 {
		t.Errorf("rows not sorted by attempt: %d then %d",
			report.Rows[0].AttemptID, report.Rows[1].AttemptID)
	}

	if len(report.Summaries) != 2 {
		t.Fatalf("summaries = %+v", report.Summaries)
	}
	base := report.Summaries[0]
	if base.Approach != Base || base.Count != 2 || base.MeanScore != 3 || base.Accepted != 1 {
		t.Errorf("base summary = %+v", base)
	}
	agent := report.Summaries[1]
	if agent.Approach != AgentBase || agent.Count != 1 || agent.MeanScore != 5 {
		t.Errorf("agent summary = %+v", agent)
	}
	if agent.MeanAttempts != 2 {
		t.Errorf("agent mean attempts = %v, want 2", agent.MeanAttempts)
	}
	if base.MeanAttempts != 0 {
		t.Errorf("single-shot approach reports attempts: %v", base.MeanAttempts)
	}
}

func TestReport_WriteJSONL(t *testing.T) {
	report := sampleReport()

	var buf bytes.Buffer
	if err := report.WriteJSONL(&buf); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	var lines int
	for scanner.Scan() {
		lines++
		var row Row
		if err := json.Unmarshal(scanner.Bytes(), &row); err != nil {
			t.Fatalf("line %d not valid JSON: %v", lines, err)
		}
		if row.Split != "test" || row.ProblemID != 10 {
			t.Errorf("line %d = %+v", lines, row)
		}
		if _, ok := row.Outcomes[Base]; !ok {
			t.Errorf("line %d missing base outcome", lines)
		}
	}
	if lines != 2 {
		t.Errorf("lines = %d, want 2", lines)
	}
}

func TestReport_Render(t *testing.T) {
	out := sampleReport().Render()

	if !strings.Contains(out, "Base") || !strings.Contains(out, "Agent (base)") {
		t.Errorf("render missing approach labels:\n%s", out)
	}
	if !strings.Contains(out, "3.00") || !strings.Contains(out, "5.00") {
		t.Errorf("render missing mean scores:\n%s", out)
	}
	if !strings.Contains(out, "2.0 tries") {
		t.Errorf("render missing agent attempt average:\n%s", out)
	}
	if !strings.Contains(out, "2 records") {
		t.Errorf("render missing record count:\n%s", out)
	}
}

func TestReport_StoreData(t *testing.T) {
	data := sampleReport().StoreData()

	if data.RunID != "run-1" || data.Split != "test" || data.Records != 2 {
		t.Errorf("store data = %+v", data)
	}
	if len(data.Approaches) != 2 {
		t.Fatalf("approaches = %+v", data.Approaches)
	}
	if data.Approaches[0].Approach != "base" || data.Approaches[0].MeanScore != 3 {
		t.Errorf("base approach data = %+v", data.Approaches[0])
	}
	if data.Approaches[1].Approach != "agent_base" || data.Approaches[1].MeanAttempts != 2 {
		t.Errorf("agent approach data = %+v", data.Approaches[1])
	}
}
