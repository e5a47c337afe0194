package judge

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	scoreLineRe  = regexp.MustCompile(`(?im)^\s*SCORE:\s*([1-5])\s*$`)
	reasonLineRe = regexp.MustCompile(`(?im)^\s*REASON:\s*(.+)$`)
	bareScoreRe  = regexp.MustCompile(`\b([1-5])\b`)
)

// parseVerdict extracts the SCORE/REASON lines from judge output. When no
// well-formed SCORE line exists, the first bare digit 1-5 anywhere in the
// text is accepted.
func parseVerdict(out string) (Verdict, bool) {
	out = strings.TrimSpace(out)

	m := scoreLineRe.FindStringSubmatch(out)
	if m == nil {
		m = bareScoreRe.FindStringSubmatch(out)
	}
	if m == nil {
		return Verdict{}, false
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Verdict{}, false
	}

	v := Verdict{Score: clampScore(n)}
	if rm := reasonLineRe.FindStringSubmatch(out); rm != nil {
		v.Reason = strings.TrimSpace(rm[1])
	}
	if v.Reason == "" {
		v.Reason = "No reason provided."
	}
	return v, true
}

func clampScore(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}
