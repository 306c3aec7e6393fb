// Package extract turns raw messages into normalized events by matching
// an ordered table of keyword rules.
package extract

import (
	"regexp"
	"strings"

	"mailevents/internal/mailtext"
	"mailevents/internal/model"
)

// descriptionMax caps the best-effort description length.
const descriptionMax = 280

var (
	locationLinePattern = regexp.MustCompile(`(?im)^\s*(?:location|where|room)\s*:\s*(.+)$`)
	meetingURLPattern   = regexp.MustCompile(`https?://(?:[\w-]+\.)?(?:zoom\.us|meet\.google\.com|teams\.microsoft\.com)[^\s"'<>)\]]*`)
)

// Extract maps a message to at most one normalized event. The second
// return value is false when no rule matches or no start time can be
// determined; that is a normal outcome, not an error.
func Extract(msg model.Message) (model.Event, bool) {
	text := msg.Subject + "\n" + msg.Body

	rule, ok := matchRule(text)
	if !ok {
		return model.Event{}, false
	}

	start, ok := deriveStart(text, msg.ReceivedAt)
	if !ok {
		return model.Event{}, false
	}

	return model.Event{
		Title:           rule.Title,
		Description:     mailtext.FirstLine(msg.Body, descriptionMax),
		Location:        findLocation(msg.Body),
		StartsAt:        start,
		Recurring:       rule.Recurring,
		SourceMessageID: msg.ID,
	}, true
}

// matchRule evaluates the rule table in order and returns the first rule
// whose keywords match the text.
func matchRule(text string) (Rule, bool) {
	lower := strings.ToLower(text)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule, true
			}
		}
	}
	return Rule{}, false
}

// findLocation pulls a best-effort location from the body: an explicit
// "Location:"/"Where:"/"Room:" line wins, then a known meeting URL.
func findLocation(body string) string {
	if m := locationLinePattern.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	if url := meetingURLPattern.FindString(body); url != "" {
		return url
	}
	return ""
}
