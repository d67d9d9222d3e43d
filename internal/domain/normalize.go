package domain

import (
	"regexp"
	"strings"
)

var (
	// linkRe drops a link and everything after it on the same line.
	linkRe = regexp.MustCompile(`https?:.*`)
	// boardingPassRe matches the operator's boarding-pass notice clause.
	boardingPassRe = regexp.MustCompile(`, no wsp boarding pass required|, wsp boarding pass required`)
)

// NormalizeText case-folds a post and strips the substrings that carry no wait
// information: links, the route prefix and the boarding-pass notice.
// An empty routePrefix skips that step.
func NormalizeText(text, routePrefix string) string {
	text = strings.ToLower(text)
	text = linkRe.ReplaceAllString(text, "")
	if routePrefix != "" {
		text = strings.ReplaceAll(text, strings.ToLower(routePrefix), "")
	}
	text = strings.TrimSpace(text)
	text = boardingPassRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// IsRelevant reports whether a normalized post is about waits at terminal.
// Only the canonical name counts here; alternate spellings are used for
// clause attribution, not selection.
func IsRelevant(normalized, terminal string) bool {
	return terminal != "" &&
		strings.Contains(normalized, "wait") &&
		strings.Contains(normalized, terminal)
}
