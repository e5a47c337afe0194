package strategy

import (
	"reflect"
	"testing"

	"github.com/abhisek/hintz/internal/analysis"
)

func TestPlan_DefaultOrdering(t *testing.T) {
	tests := []struct {
		complexity analysis.Complexity
		want       []Strategy
	}{
		{analysis.Simple, []Strategy{Direct, Questions, StepByStep}},
		{analysis.Moderate, []Strategy{Questions, StepByStep, Direct}},
		{analysis.Complex, []Strategy{StepByStep, Questions, Direct}},
	}

	sel := NewSelector()
	for _, tt := range tests {
		t.Run(string(tt.complexity), func(t *testing.T) {
			got := sel.Plan(tt.complexity, nil)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Plan(%q) = %v, want %v", tt.complexity, got, tt.want)
			}
		})
	}
}

func TestPlan_ExclusionPreservesOrder(t *testing.T) {
	sel := NewSelector()

	got := sel.Plan(analysis.Complex, map[Strategy]bool{StepByStep: true})
	want := []Strategy{Questions, Direct}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Plan(complex, {step_by_step}) = %v, want %v", got, want)
	}

	got = sel.Plan(analysis.Simple, map[Strategy]bool{Questions: true})
	want = []Strategy{Direct, StepByStep}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Plan(simple, {questions}) = %v, want %v", got, want)
	}
}

func TestPlan_AllExcludedIsEmpty(t *testing.T) {
	sel := NewSelector()
	excluded := map[Strategy]bool{Direct: true, Questions: true, StepByStep: true}

	got := sel.Plan(analysis.Moderate, excluded)
	if len(got) != 0 {
		t.Errorf("expected empty plan, got %v", got)
	}
}

func TestPlan_ExhaustiveExclusionInvariants(t *testing.T) {
	sel := NewSelector()
	complexities := []analysis.Complexity{analysis.Simple, analysis.Moderate, analysis.Complex}

	for _, c := range complexities {
		base := sel.Plan(c, nil)
		for mask := 0; mask < 8; mask++ {
			excluded := make(map[Strategy]bool)
			for i, s := range All {
				if mask&(1<<i) != 0 {
					excluded[s] = true
				}
			}

			plan := sel.Plan(c, excluded)

			if len(plan) != len(base)-len(excluded) {
				t.Errorf("%q mask %d: plan length %d, want %d", c, mask, len(plan), len(base)-len(excluded))
			}

			seen := make(map[Strategy]bool)
			for _, s := range plan {
				if excluded[s] {
					t.Errorf("%q mask %d: plan contains excluded %q", c, mask, s)
				}
				if seen[s] {
					t.Errorf("%q mask %d: plan contains duplicate %q", c, mask, s)
				}
				seen[s] = true
			}

			// Relative order must match the base plan.
			idx := 0
			for _, s := range base {
				if idx < len(plan) && plan[idx] == s {
					idx++
				}
			}
			if idx != len(plan) {
				t.Errorf("%q mask %d: plan %v is not a subsequence of %v", c, mask, plan, base)
			}
		}
	}
}

func TestPlan_UnknownComplexityFallsBackToModerate(t *testing.T) {
	sel := NewSelector()

	got := sel.Plan(analysis.Complexity("unheard-of"), nil)
	want := []Strategy{Questions, StepByStep, Direct}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Plan(unknown) = %v, want moderate ordering %v", got, want)
	}
}

func TestTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   Table
		wantErr bool
	}{
		{
			name:    "default table is valid",
			table:   DefaultTable(),
			wantErr: false,
		},
		{
			name: "missing complexity",
			table: Table{
				analysis.Simple:   {Direct},
				analysis.Moderate: {Questions},
			},
			wantErr: true,
		},
		{
			name: "duplicate strategy",
			table: Table{
				analysis.Simple:   {Direct, Direct},
				analysis.Moderate: {Questions},
				analysis.Complex:  {StepByStep},
			},
			wantErr: true,
		},
		{
			name: "unknown strategy",
			table: Table{
				analysis.Simple:   {Strategy("telepathy")},
				analysis.Moderate: {Questions},
				analysis.Complex:  {StepByStep},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewSelectorWithTable_RejectsInvalid(t *testing.T) {
	_, err := NewSelectorWithTable(Table{})
	if err == nil {
		t.Fatal("expected error for empty table")
	}

	sel, err := NewSelectorWithTable(DefaultTable())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel == nil {
		t.Fatal("expected non-nil selector")
	}
}
