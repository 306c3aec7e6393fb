package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Token recognition is deliberately shallow: an ISO date, a 24h clock
// value, or an am/pm clock value. Anything fancier (natural-language
// dates, .ics attachments) is out of scope.
var (
	isoDatePattern  = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	meridiemPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s?(am|pm)\b`)
	clockPattern    = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
)

// deriveStart determines the event start for a message. Recognized
// date/time tokens in the text override the corresponding parts of the
// received timestamp; with no tokens at all the received timestamp is
// used as-is. Returns false when no start can be determined.
func deriveStart(text string, received time.Time) (time.Time, bool) {
	base := received.UTC()

	date, hasDate := findDateToken(text)
	hour, minute, hasClock := findClockToken(text)

	if !hasDate && base.IsZero() {
		// Without a date token the received timestamp is the only
		// possible day, and the provider did not supply one.
		return time.Time{}, false
	}

	if !hasDate && !hasClock {
		return base, true
	}

	y, m, d := base.Date()
	if hasDate {
		y, m, d = date.Date()
	}

	if !hasClock {
		if hasDate {
			// Date token with no time: start of that UTC day.
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
		hour, minute = base.Hour(), base.Minute()
	}

	return time.Date(y, m, d, hour, minute, 0, 0, time.UTC), true
}

func findDateToken(text string) (time.Time, bool) {
	m := isoDatePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", m[0])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func findClockToken(text string) (hour, minute int, ok bool) {
	if m := meridiemPattern.FindStringSubmatch(text); m != nil {
		hour, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour >= 1 && hour <= 12 && minute <= 59 {
			if strings.EqualFold(m[3], "pm") && hour != 12 {
				hour += 12
			}
			if strings.EqualFold(m[3], "am") && hour == 12 {
				hour = 0
			}
			return hour, minute, true
		}
	}

	if m := clockPattern.FindStringSubmatch(text); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		if hour <= 23 && minute <= 59 {
			return hour, minute, true
		}
	}

	return 0, 0, false
}
