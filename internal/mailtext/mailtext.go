// Package mailtext holds small text helpers shared by the message
// sources and the extractor.
package mailtext

import (
	"html"
	"regexp"
	"strings"
)

var (
	scriptStylePattern = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	lineBreakPattern   = regexp.MustCompile(`(?i)<(br\s*/?|/p|/div|/li)>`)
	tagPattern         = regexp.MustCompile(`(?s)<[^>]*>`)
	trailingWSPattern  = regexp.MustCompile(`[ \t]+\n`)
	blankRunPattern    = regexp.MustCompile(`\n{3,}`)
)

// StripHTML renders an HTML fragment as readable plain text: scripts and
// styles are dropped, line-breaking tags become newlines, remaining tags
// are removed, and entities are decoded.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = scriptStylePattern.ReplaceAllString(s, "")
	s = lineBreakPattern.ReplaceAllString(s, "\n")
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = trailingWSPattern.ReplaceAllString(s, "\n")
	s = blankRunPattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// FirstLine returns the first non-empty line of s, trimmed and capped at
// max runes. Returns "" when s has no content.
func FirstLine(s string, max int) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		runes := []rune(line)
		if max > 0 && len(runes) > max {
			return strings.TrimSpace(string(runes[:max]))
		}
		return line
	}
	return ""
}
