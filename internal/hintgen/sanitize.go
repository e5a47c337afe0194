package hintgen

import (
	"errors"
	"regexp"
	"strings"
)

var (
	fenceRe      = regexp.MustCompile("```[\\s\\S]*?```")
	hintPrefixRe = regexp.MustCompile(`(?i)^\s*Hint:\s*`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

var (
	errEmptyHint  = errors.New("empty hint after sanitizing")
	errFencedHint = errors.New("code fence survived sanitizing")
)

// Sanitize cleans raw model output into a short, code-free hint: fenced
// code blocks are removed, a leading "Hint:" label is stripped, the text
// is clamped to two sentences, and whitespace is collapsed.
func Sanitize(text string) string {
	t := strings.TrimSpace(text)
	if t == "" {
		return ""
	}

	t = strings.TrimSpace(fenceRe.ReplaceAllString(t, ""))
	t = hintPrefixRe.ReplaceAllString(t, "")

	sentences := splitSentences(t)
	if len(sentences) > 2 {
		sentences = sentences[:2]
	}
	t = strings.Join(sentences, " ")

	return strings.TrimSpace(spaceRe.ReplaceAllString(t, " "))
}

// validateHint rejects sanitized output that cannot be shown to a
// learner. An unterminated fence survives Sanitize, so the marker is
// checked again here.
func validateHint(hint string) error {
	if hint == "" {
		return errEmptyHint
	}
	if strings.Contains(hint, "```") {
		return errFencedHint
	}
	return nil
}

// splitSentences breaks text at whitespace that follows sentence-ending
// punctuation. A trailing unterminated fragment counts as a sentence.
func splitSentences(s string) []string {
	var sentences []string
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		j := i + 1
		for j < len(s) && isSpace(s[j]) {
			j++
		}
		if j == i+1 {
			continue // punctuation not followed by whitespace
		}
		if piece := strings.TrimSpace(s[start : i+1]); piece != "" {
			sentences = append(sentences, piece)
		}
		start = j
		i = j - 1
	}

	if tail := strings.TrimSpace(s[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
