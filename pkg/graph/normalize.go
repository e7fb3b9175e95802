package graph

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	// Word characters are Unicode letters and digits, not just ASCII;
	// accented and non-Latin entity names must survive normalization.
	disallowed = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?;:]`)
)

// NormalizeText collapses whitespace runs to single spaces and strips
// characters that are neither word characters, whitespace, nor basic
// punctuation. It never fails and is idempotent; empty or all-noise input
// yields the empty string.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = disallowed.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
