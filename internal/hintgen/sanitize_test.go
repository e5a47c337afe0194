package hintgen

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "plain short hint",
			in:   "Check the end index of your slice.",
			want: "Check the end index of your slice.",
		},
		{
			name: "strips hint prefix",
			in:   "Hint: Check the end index of your slice.",
			want: "Check the end index of your slice.",
		},
		{
			name: "strips hint prefix case insensitive",
			in:   "hint:   Look at the loop bound.",
			want: "Look at the loop bound.",
		},
		{
			name: "removes fenced code",
			in:   "Try this instead:\n```python\nreturn s[::-1]\n```\nThink about the slice direction.",
			want: "Try this instead: Think about the slice direction.",
		},
		{
			name: "clamps to two sentences",
			in:   "First sentence. Second sentence. Third sentence. Fourth.",
			want: "First sentence. Second sentence.",
		},
		{
			name: "collapses whitespace",
			in:   "Check  the\n\nloop   bound.",
			want: "Check the loop bound.",
		},
		{
			name: "punctuation run splits once",
			in:   "Are you sure?! Count the elements again. And once more.",
			want: "Are you sure?! Count the elements again.",
		},
		{
			name: "unterminated tail is a sentence",
			in:   "Check the bound. Then rerun the tests. maybe with -v",
			want: "Check the bound. Then rerun the tests.",
		},
		{
			name: "only fenced code yields empty",
			in:   "```python\nreturn s[::-1]\n```",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.in)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateHint(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{"usable hint", "Check the slice bounds.", nil},
		{"empty", "", errEmptyHint},
		{"unterminated fence", "Try ```python return s[::-1]", errFencedHint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateHint(tt.in); err != tt.wantErr {
				t.Errorf("validateHint(%q) = %v, want %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"One sentence.", 1},
		{"One. Two.", 2},
		{"One. Two. Three!", 3},
		{"No terminator at all", 1},
		{"Version 2.5 is fine here.", 1},
	}

	for _, tt := range tests {
		got := splitSentences(tt.in)
		if len(got) != tt.want {
			t.Errorf("splitSentences(%q) = %v (%d pieces), want %d", tt.in, got, len(got), tt.want)
		}
	}
}
